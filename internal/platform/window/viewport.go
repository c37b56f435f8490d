package window

import (
	"image/color"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// Viewport maps world coordinates (origin at the center, +Y up) onto a pixel
// surface (origin at the top-left, +Y down).
type Viewport struct {
	world core.Vec2
	w, h  float64
}

// NewViewport creates a viewport showing world on a w x h pixel surface.
func NewViewport(world core.Vec2, w, h int) Viewport {
	return Viewport{world: world, w: float64(w), h: float64(h)}
}

// Point returns the pixel position of world point v.
func (v Viewport) Point(p core.Vec2) (x, y float32) {
	sx, sy := v.scale()
	return float32((p.X + v.world.X/2) * sx), float32((v.world.Y/2 - p.Y) * sy)
}

// Rect returns the pixel rectangle covered by b.
func (v Viewport) Rect(b core.Box) (x, y, w, h float32) {
	sx, sy := v.scale()
	x, y = v.Point(core.V(b.Min().X, b.Max().Y))
	return x, y, float32(b.Size.X * sx), float32(b.Size.Y * sy)
}

// Visible reports whether any part of b lies on the surface.
func (v Viewport) Visible(b core.Box) bool {
	x, y, w, h := v.Rect(b)
	return x+w > 0 && y+h > 0 && float64(x) < v.w && float64(y) < v.h
}

func (v Viewport) scale() (sx, sy float64) {
	if v.world.X <= 0 || v.world.Y <= 0 {
		return 0, 0
	}
	return v.w / v.world.X, v.h / v.world.Y
}

var (
	skyColor      = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	obstacleColor = color.RGBA{R: 84, G: 168, B: 56, A: 255}
	playerColor   = color.RGBA{R: 244, G: 206, B: 66, A: 255}
	beakColor     = color.RGBA{R: 240, G: 128, B: 40, A: 255}
	panelColor    = color.RGBA{A: 180}

	cloudColors = []color.Color{
		color.RGBA{R: 220, G: 232, B: 236, A: 255},
		color.RGBA{R: 250, G: 250, B: 250, A: 255},
	}
	buildingColors = []color.Color{
		color.RGBA{R: 60, G: 66, B: 78, A: 255},
		color.RGBA{R: 86, G: 94, B: 108, A: 255},
		color.RGBA{R: 112, G: 120, B: 134, A: 255},
	}
)

// entityColor picks the fill color of a drawn entity.
func entityColor(e sim.EntityView) color.Color {
	switch e.Kind {
	case sim.KindDecor:
		if e.Layer == sim.LayerFar {
			return pick(cloudColors, e.Shade)
		}
		return pick(buildingColors, e.Shade)
	case sim.KindObstacle:
		return obstacleColor
	case sim.KindPlayer:
		return playerColor
	}
	return color.Transparent
}

func pick(palette []color.Color, i uint8) color.Color {
	if int(i) >= len(palette) {
		return palette[len(palette)-1]
	}
	return palette[i]
}
