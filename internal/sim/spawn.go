package sim

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// spawnSystem creates a new obstacle pair once the spawn interval has elapsed.
func spawnSystem(st *State, t *tick) {
	oc := t.cfg.Obstacles
	if t.in.Now-st.LastSpawnTime <= oc.SpawnInterval {
		return
	}
	st.LastSpawnTime = t.in.Now

	gapCenter := t.rng.Range(oc.GapMin, oc.GapMax)
	spawnPair(st, oc, gapCenter)
}

// spawnPair places the upper and lower members around gapCenter.
// Both start at SpawnX and share velocity and pair ID.
func spawnPair(st *State, oc config.Obstacles, gapCenter float64) (upper, lower EntityID) {
	st.nextPair++
	offset := oc.Gap/2 + oc.Height/2

	base := Entity{
		Kind:      KindObstacle,
		Transform: Transform{Scale: 1, Depth: oc.Depth},
		Velocity:  core.V(-oc.Speed, 0),
		Size:      core.V(oc.Width, oc.Height),
		Shape:     ShapeRect,
		PairID:    st.nextPair,
	}

	top := base
	top.Transform.Pos = core.V(oc.SpawnX, gapCenter+offset)
	bottom := base
	bottom.Transform.Pos = core.V(oc.SpawnX, gapCenter-offset)

	return st.Store.Spawn(top), st.Store.Spawn(bottom)
}
