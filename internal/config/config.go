// Package config provides YAML-based game configuration loading and
// validation for skyhop.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all tuning for the simulation and its collaborators.
// Units are world units (the visible world is World.Width x World.Height,
// centered on the origin) and seconds.
type Config struct {
	World     World     `yaml:"world"`
	Physics   Physics   `yaml:"physics"`
	Player    Player    `yaml:"player"`
	Obstacles Obstacles `yaml:"obstacles"`
	Scoring   Scoring   `yaml:"scoring"`
	Decor     Decor     `yaml:"decor"`
	Audio     Audio     `yaml:"audio"`
}

// World defines the visible area.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines player motion.
type Physics struct {
	GravityRate      float64 `yaml:"gravity_rate"`       // Accumulator decrease per second
	JumpVelocity     float64 `yaml:"jump_velocity"`      // Vertical velocity set on a jump edge
	JumpGravityReset float64 `yaml:"jump_gravity_reset"` // Accumulator value set on a jump edge
	MaxDT            float64 `yaml:"max_dt"`             // Upper bound for one tick; 0 disables
}

// Player defines the player sprite and start position.
type Player struct {
	StartX       float64 `yaml:"start_x"`
	StartY       float64 `yaml:"start_y"`
	Depth        float64 `yaml:"depth"`
	Scale        float64 `yaml:"scale"`
	SpriteWidth  float64 `yaml:"sprite_width"`
	SpriteHeight float64 `yaml:"sprite_height"`
}

// Hitbox returns the scaled collision size of the player.
func (p Player) Hitbox() (w, h float64) {
	return p.SpriteWidth * p.Scale, p.SpriteHeight * p.Scale
}

// Obstacles defines pipe pairs.
type Obstacles struct {
	SpawnInterval float64 `yaml:"spawn_interval"` // Seconds between spawns
	Gap           float64 `yaml:"gap"`            // Vertical opening between members
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnX        float64 `yaml:"spawn_x"`
	Speed         float64 `yaml:"speed"` // Leftward speed, positive
	GapMin        float64 `yaml:"gap_min"`
	GapMax        float64 `yaml:"gap_max"`
	DespawnX      float64 `yaml:"despawn_x"`
	Depth         float64 `yaml:"depth"`
}

// ScoringMode selects how passing obstacles is rewarded.
type ScoringMode string

const (
	ScorePerPair     ScoringMode = "per_pair"
	ScorePerObstacle ScoringMode = "per_obstacle"
)

// Scoring defines score granularity.
type Scoring struct {
	Mode ScoringMode `yaml:"mode"`
}

// Decor defines both parallax layers.
type Decor struct {
	Clouds    Layer `yaml:"clouds"`
	Buildings Layer `yaml:"buildings"`
}

// Layer defines one parallax layer. Sizes are full extents; for clouds they
// are ellipse diameters.
type Layer struct {
	Count     int     `yaml:"count"`
	Speed     float64 `yaml:"speed"`
	WrapAt    float64 `yaml:"wrap_at"` // Entity wraps once x < -WrapAt
	WrapTo    float64 `yaml:"wrap_to"` // ...to x = WrapTo
	XMin      float64 `yaml:"x_min"`
	XMax      float64 `yaml:"x_max"`
	YMin      float64 `yaml:"y_min"`
	YMax      float64 `yaml:"y_max"`
	WidthMin  float64 `yaml:"width_min"`
	WidthMax  float64 `yaml:"width_max"`
	HeightMin float64 `yaml:"height_min"`
	HeightMax float64 `yaml:"height_max"`
	DepthMin  float64 `yaml:"depth_min"`
	DepthMax  float64 `yaml:"depth_max"`
}

// Audio defines the sound collaborator.
type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // Linear gain, 0..1
	SampleRate int     `yaml:"sample_rate"`
}

// Validate checks for values the simulation cannot run with.
func (c Config) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.Physics.GravityRate >= 0, "physics.gravity_rate must be >= 0, got %v", c.Physics.GravityRate)
	check(c.Physics.MaxDT >= 0, "physics.max_dt must be >= 0, got %v", c.Physics.MaxDT)
	check(c.Player.Scale > 0, "player.scale must be positive, got %v", c.Player.Scale)
	check(c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive, got %v", c.Obstacles.SpawnInterval)
	check(c.Obstacles.Gap > 0, "obstacles.gap must be positive, got %v", c.Obstacles.Gap)
	check(c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive")
	check(c.Obstacles.Speed > 0, "obstacles.speed must be positive, got %v", c.Obstacles.Speed)
	check(c.Obstacles.GapMin < c.Obstacles.GapMax, "obstacles.gap_min (%v) must be below gap_max (%v)", c.Obstacles.GapMin, c.Obstacles.GapMax)
	check(c.Obstacles.DespawnX < c.Obstacles.SpawnX, "obstacles.despawn_x must be left of spawn_x")
	check(c.Scoring.Mode == ScorePerPair || c.Scoring.Mode == ScorePerObstacle, "scoring.mode must be %q or %q, got %q", ScorePerPair, ScorePerObstacle, c.Scoring.Mode)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1], got %v", c.Audio.Volume)

	layers := []struct {
		name string
		l    Layer
	}{
		{"clouds", c.Decor.Clouds},
		{"buildings", c.Decor.Buildings},
	}
	for _, d := range layers {
		check(d.l.Count >= 0, "decor.%s.count must be >= 0", d.name)
		check(d.l.WrapAt > 0 && d.l.WrapTo > 0, "decor.%s wrap bounds must be positive", d.name)
		check(d.l.XMin <= d.l.XMax && d.l.YMin <= d.l.YMax, "decor.%s spawn ranges are inverted", d.name)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}
