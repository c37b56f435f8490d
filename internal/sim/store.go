package sim

// Store holds every entity of a simulation.
// Iteration follows spawn order, which keeps ticks deterministic.
// Despawning during Each is allowed; the slot is compacted at the end of the tick.
type Store struct {
	next   EntityID
	byID   map[EntityID]*Entity
	order  []EntityID
	player EntityID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:  make(map[EntityID]*Entity),
		order: make([]EntityID, 0, 256),
	}
}

// Spawn adds an entity and returns its new ID. Any ID set on e is ignored.
func (s *Store) Spawn(e Entity) EntityID {
	if e.Kind == KindPlayer {
		assertf(s.player == 0, "second player spawned while %d is alive", s.player)
	}

	s.next++
	e.ID = s.next
	s.byID[e.ID] = &e
	s.order = append(s.order, e.ID)

	if e.Kind == KindPlayer {
		s.player = e.ID
	}
	return e.ID
}

// Despawn removes an entity. Removing an unknown or already removed ID is a no-op.
// Returns whether anything was removed.
func (s *Store) Despawn(id EntityID) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	if s.player == id {
		s.player = 0
	}
	return true
}

// Get returns a live entity.
func (s *Store) Get(id EntityID) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Player returns the live player, if any.
func (s *Store) Player() (*Entity, bool) {
	if s.player == 0 {
		return nil, false
	}
	return s.Get(s.player)
}

// Each calls fn for every live entity of the given kind, in spawn order.
func (s *Store) Each(kind Kind, fn func(e *Entity)) {
	for _, id := range s.order {
		if e, ok := s.byID[id]; ok && e.Kind == kind {
			fn(e)
		}
	}
}

// All calls fn for every live entity, in spawn order.
func (s *Store) All(fn func(e *Entity)) {
	for _, id := range s.order {
		if e, ok := s.byID[id]; ok {
			fn(e)
		}
	}
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.byID)
}

// Count returns the number of live entities of a kind.
func (s *Store) Count(kind Kind) int {
	n := 0
	for _, e := range s.byID {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Clear removes every entity for which keep returns false.
// Returns the number of removed entities.
func (s *Store) Clear(keep func(e *Entity) bool) int {
	removed := 0
	for id, e := range s.byID {
		if keep != nil && keep(e) {
			continue
		}
		s.Despawn(id)
		removed++
	}
	s.compact()
	return removed
}

// compact drops despawned IDs from the iteration order.
func (s *Store) compact() {
	if len(s.order) == len(s.byID) {
		return
	}
	live := s.order[:0]
	for _, id := range s.order {
		if _, ok := s.byID[id]; ok {
			live = append(live, id)
		}
	}
	s.order = live
}
