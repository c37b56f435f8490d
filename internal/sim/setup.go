package sim

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Building shades, darkest first.
const buildingShades = 3

// spawnPlayer creates the player at its start position.
func spawnPlayer(st *State, pc config.Player) EntityID {
	w, h := pc.Hitbox()
	return st.Store.Spawn(Entity{
		Kind: KindPlayer,
		Transform: Transform{
			Pos:   core.V(pc.StartX, pc.StartY),
			Scale: pc.Scale,
			Depth: pc.Depth,
		},
		Size:  core.V(w, h),
		Shape: ShapeSprite,
	})
}

// spawnClouds fills the far parallax layer. Deeper clouds get the lighter shade.
func spawnClouds(st *State, rng Random, lc config.Layer) {
	mid := (lc.DepthMin + lc.DepthMax) / 2
	for i := 0; i < lc.Count; i++ {
		w := rng.Range(lc.WidthMin, lc.WidthMax)
		h := rng.Range(lc.HeightMin, lc.HeightMax)
		x := rng.Range(lc.XMin, lc.XMax)
		y := rng.Range(lc.YMin, lc.YMax)
		z := rng.Range(lc.DepthMin, lc.DepthMax)

		var shade uint8
		if z >= mid {
			shade = 1
		}
		st.Store.Spawn(Entity{
			Kind:      KindDecor,
			Transform: Transform{Pos: core.V(x, y), Scale: 1, Depth: z},
			Size:      core.V(w, h),
			Shape:     ShapeEllipse,
			Layer:     LayerFar,
			Shade:     shade,
		})
	}
}

// spawnBuildings fills the near parallax layer. Buildings are anchored at their
// bottom-left corner so they all stand on the same line.
func spawnBuildings(st *State, rng Random, lc config.Layer) {
	for i := 0; i < lc.Count; i++ {
		w := rng.Range(lc.WidthMin, lc.WidthMax)
		h := rng.Range(lc.HeightMin, lc.HeightMax)
		shade := uint8(rng.Intn(buildingShades))
		x := rng.Range(lc.XMin, lc.XMax)
		y := rng.Range(lc.YMin, lc.YMax)
		z := rng.Range(lc.DepthMin, lc.DepthMax)

		st.Store.Spawn(Entity{
			Kind:      KindDecor,
			Transform: Transform{Pos: core.V(x, y), Scale: 1, Depth: z},
			Size:      core.V(w, h),
			Anchor:    AnchorBottomLeft,
			Shape:     ShapeRect,
			Layer:     LayerNear,
			Shade:     shade,
		})
	}
}
