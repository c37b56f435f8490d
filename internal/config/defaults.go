package config

import (
	_ "embed"
)

//go:embed defaults/skyhop.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It mirrors defaults/skyhop.yaml and is the fallback if the embedded file
// cannot be parsed.
func Default() Config {
	return Config{
		World: World{Width: 1280, Height: 720},
		Physics: Physics{
			GravityRate:      5.0,
			JumpVelocity:     150.0,
			JumpGravityReset: 0.0,
			MaxDT:            0.1,
		},
		Player: Player{
			StartX:       -100,
			StartY:       0,
			Depth:        2,
			Scale:        0.15,
			SpriteWidth:  460,
			SpriteHeight: 307,
		},
		Obstacles: Obstacles{
			SpawnInterval: 5.0,
			Gap:           175,
			Width:         100,
			Height:        670,
			SpawnX:        800,
			Speed:         100,
			GapMin:        -200,
			GapMax:        200,
			DespawnX:      -800,
			Depth:         1,
		},
		Scoring: Scoring{Mode: ScorePerPair},
		Decor: Decor{
			Clouds: Layer{
				Count:     100,
				Speed:     100,
				WrapAt:    670,
				WrapTo:    670,
				XMin:      -670,
				XMax:      670,
				YMin:      350,
				YMax:      400,
				WidthMin:  40,
				WidthMax:  200,
				HeightMin: 2,
				HeightMax: 200,
				DepthMin:  1.0,
				DepthMax:  1.5,
			},
			Buildings: Layer{
				Count:     20,
				Speed:     50,
				WrapAt:    800,
				WrapTo:    800,
				XMin:      -640,
				XMax:      640,
				YMin:      -375,
				YMax:      -375,
				WidthMin:  50,
				WidthMax:  200,
				HeightMin: 100,
				HeightMax: 400,
				DepthMin:  0.0,
				DepthMax:  0.5,
			},
		},
		Audio: Audio{
			Enabled:    true,
			Volume:     0.05,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
