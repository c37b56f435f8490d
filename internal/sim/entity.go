// Package sim implements the skyhop simulation: a single-threaded, tick-driven
// game-mode machine (menu, playing, game over) composed with the per-frame
// spawn, motion, collision and scoring systems.
//
// The package has no I/O. Frontends feed it core.TickInput values and drain the
// events and snapshots it produces.
package sim

import "github.com/vovakirdan/skyhop/internal/core"

// EntityID identifies an entity within one Simulation. Zero is never assigned.
type EntityID uint32

// Kind tags what an entity is. Systems dispatch on it explicitly.
type Kind uint8

const (
	KindCamera Kind = iota // Persistent viewport, survives teardown
	KindPlayer
	KindObstacle
	KindDecor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindDecor:
		return "decor"
	default:
		return "unknown"
	}
}

// Layer is the parallax layer of a decorative entity.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerFar        // Clouds
	LayerNear       // Buildings
)

// Shape tells renderers how to draw an entity's bounds.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeEllipse
	ShapeSprite
)

// Anchor is the point of the bounds that Transform.Pos refers to.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorBottomLeft
)

// Transform places an entity in world space.
type Transform struct {
	Pos   core.Vec2
	Scale float64
	Depth float64 // Render order; higher is drawn later
}

// Entity is one simulation object. The zero value is not a valid entity;
// create entities through Store.Spawn.
type Entity struct {
	ID        EntityID
	Kind      Kind
	Transform Transform
	Velocity  core.Vec2
	Size      core.Vec2 // Full extents in world units, scale already applied
	Anchor    Anchor
	Shape     Shape
	Layer     Layer  // Decor only
	PairID    uint32 // Obstacles only; shared by both members of a pair
	Shade     uint8  // Palette index within the kind, for renderers
}

// Bounds returns the world-space box covered by the entity.
func (e *Entity) Bounds() core.Box {
	c := e.Transform.Pos
	if e.Anchor == AnchorBottomLeft {
		c = core.V(c.X+e.Size.X/2, c.Y+e.Size.Y/2)
	}
	return core.BoxAt(c, e.Size)
}
