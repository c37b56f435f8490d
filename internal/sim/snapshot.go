package sim

import (
	"sort"

	"github.com/vovakirdan/skyhop/internal/core"
)

// EntityView is the read-only render data of one entity.
type EntityView struct {
	ID     EntityID
	Kind   Kind
	Layer  Layer
	Shape  Shape
	Bounds core.Box
	Depth  float64
	Shade  uint8
}

// Snapshot is everything a renderer or UI needs for one frame.
type Snapshot struct {
	Mode     Mode
	Score    int
	RunScore int
	Best     int
	World    core.Vec2    // Visible world size
	Entities []EntityView // Back to front
	Banner   string       // Mode text; JumpPlaceholder not yet substituted
}

// Snapshot captures the current frame. Entities are sorted by depth, ties
// broken by spawn order, so renderers can paint in slice order.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.state.Mode,
		Score:    s.state.Score,
		RunScore: s.state.RunScore,
		Best:     s.state.Best,
		World:    core.V(s.cfg.World.Width, s.cfg.World.Height),
		Entities: make([]EntityView, 0, s.state.Store.Len()),
		Banner:   s.state.Mode.Banner(),
	}

	s.state.Store.All(func(e *Entity) {
		snap.Entities = append(snap.Entities, EntityView{
			ID:     e.ID,
			Kind:   e.Kind,
			Layer:  e.Layer,
			Shape:  e.Shape,
			Bounds: e.Bounds(),
			Depth:  e.Transform.Depth,
			Shade:  e.Shade,
		})
	})

	sort.SliceStable(snap.Entities, func(i, j int) bool {
		return snap.Entities[i].Depth < snap.Entities[j].Depth
	})
	return snap
}

// HUD returns the text lines a UI collaborator shows for this snapshot.
func (snap Snapshot) HUD() []string {
	if snap.Mode != ModePlaying {
		return nil
	}
	return []string{ScoreText(snap.Score)}
}
