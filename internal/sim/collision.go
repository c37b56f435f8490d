package sim

// Collision reports that two entities overlap during the current tick.
type Collision struct {
	A, B EntityID
}

// CollisionSource is the broad/narrow-phase collaborator. It is asked once per
// Playing tick, after motion, for the overlaps of that tick only.
type CollisionSource interface {
	Collisions(store *Store) []Collision
}

// CollisionFunc adapts a function to CollisionSource.
type CollisionFunc func(store *Store) []Collision

// Collisions implements CollisionSource.
func (f CollisionFunc) Collisions(store *Store) []Collision {
	return f(store)
}

// AABBDetector reports player/obstacle overlaps using the entities' bounds.
// Only the player can collide, so the broad phase is a single sweep.
type AABBDetector struct{}

// Collisions implements CollisionSource.
func (AABBDetector) Collisions(store *Store) []Collision {
	p, ok := store.Player()
	if !ok {
		return nil
	}
	pb := p.Bounds()

	var out []Collision
	store.Each(KindObstacle, func(e *Entity) {
		if pb.Overlaps(e.Bounds()) {
			out = append(out, Collision{A: p.ID, B: e.ID})
		}
	})
	return out
}

// collisionSystem turns overlap events into fatal crashes.
// Events that name dead entities, or arrive after the player is gone, are ignored.
func collisionSystem(st *State, t *tick, src CollisionSource) {
	for _, c := range src.Collisions(st.Store) {
		p, ok := st.Store.Player()
		if !ok {
			return
		}

		var other EntityID
		switch p.ID {
		case c.A:
			other = c.B
		case c.B:
			other = c.A
		default:
			continue
		}

		if o, ok := st.Store.Get(other); !ok || o.Kind != KindObstacle {
			continue
		}

		crash(st, t, p.ID)
	}
}

// crash ends the current run.
func crash(st *State, t *tick, player EntityID) {
	st.Store.Despawn(player)
	st.RunScore = st.Score
	if st.RunScore > st.Best {
		st.Best = st.RunScore
	}
	st.Score = 0

	t.crashed = true
	t.emit(Crashed{Score: st.RunScore})
	t.emit(Sound{Name: SoundCrash})
	t.request(ModeGameOver)
}
