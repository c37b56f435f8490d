package sim

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Simulation owns one game: its state, random source and collision collaborator.
// It is not safe for concurrent use; each frontend drives its own instance.
type Simulation struct {
	cfg        config.Config
	state      State
	rng        Random
	collisions CollisionSource
	ticks      int
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithRandom replaces the seeded random source.
func WithRandom(r Random) Option {
	return func(s *Simulation) {
		s.rng = r
	}
}

// WithCollisionSource replaces the default AABB detector.
func WithCollisionSource(c CollisionSource) Option {
	return func(s *Simulation) {
		s.collisions = c
	}
}

// Output is what a tick hands back to collaborators.
type Output struct {
	Events []Event
	Mode   Mode
	Score  int
}

// New creates a simulation in the main menu. Only the camera exists.
func New(cfg config.Config, seed int64, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:        cfg,
		state:      newState(),
		rng:        NewRandom(seed),
		collisions: AABBDetector{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store.Spawn(Entity{Kind: KindCamera, Transform: Transform{Scale: 1}})
	return s
}

// Tick advances the simulation by one step.
//
// Systems run in a fixed order: in Playing mode spawn, motion, collision and
// lifecycle; in the other modes only the jump check. A mode change requested
// during the tick is applied at its end, after every system has run.
func (s *Simulation) Tick(in core.TickInput) Output {
	t := &tick{
		cfg: &s.cfg,
		rng: s.rng,
		in:  s.clamp(in),
	}

	switch s.state.Mode {
	case ModeMainMenu, ModeGameOver:
		if t.in.Jump {
			t.request(ModePlaying)
		}
	case ModePlaying:
		spawnSystem(&s.state, t)
		motionSystem(&s.state, t)
		collisionSystem(&s.state, t, s.collisions)
		lifecycleSystem(&s.state, t)
	}

	if t.transition {
		s.transition(t)
	}
	s.state.Store.compact()
	s.ticks++

	return Output{
		Events: t.events,
		Mode:   s.state.Mode,
		Score:  s.state.Score,
	}
}

// clamp keeps dt within [0, MaxDT].
func (s *Simulation) clamp(in core.TickInput) core.TickInput {
	if maxDT := s.cfg.Physics.MaxDT; maxDT > 0 {
		in.DT = core.ClampF(in.DT, 0, maxDT)
	} else if in.DT < 0 {
		in.DT = 0
	}
	return in
}

// transition tears down the current mode and enters the requested one.
func (s *Simulation) transition(t *tick) {
	from, to := s.state.Mode, t.next
	if !from.CanTransition(to) {
		assertf(false, "illegal transition %s -> %s", from, to)
		return
	}

	s.teardown()
	s.state.Mode = to

	if to == ModePlaying {
		s.enterPlaying()
	}
	t.emit(ModeChanged{From: from, To: to})
}

// teardown destroys everything except the camera.
func (s *Simulation) teardown() {
	s.state.Store.Clear(func(e *Entity) bool {
		return e.Kind == KindCamera
	})
	clear(s.state.passed)
}

// enterPlaying resets run state and spawns decor and the player.
func (s *Simulation) enterPlaying() {
	s.state.Score = 0
	s.state.LastSpawnTime = 0
	s.state.Gravity = 0

	spawnClouds(&s.state, s.rng, s.cfg.Decor.Clouds)
	spawnBuildings(&s.state, s.rng, s.cfg.Decor.Buildings)
	spawnPlayer(&s.state, s.cfg.Player)
}

// Mode returns the active mode.
func (s *Simulation) Mode() Mode {
	return s.state.Mode
}

// Score returns the current run's score.
func (s *Simulation) Score() int {
	return s.state.Score
}

// RunScore returns the final score of the last crashed run.
func (s *Simulation) RunScore() int {
	return s.state.RunScore
}

// Best returns the best run score seen by this simulation.
func (s *Simulation) Best() int {
	return s.state.Best
}

// LastSpawnTime returns the clock time of the last obstacle spawn.
func (s *Simulation) LastSpawnTime() float64 {
	return s.state.LastSpawnTime
}

// Gravity returns the current fall accumulator.
func (s *Simulation) Gravity() float64 {
	return s.state.Gravity
}

// Ticks returns how many ticks have run.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Store exposes the entity store for inspection. Callers must not mutate it
// outside of tests.
func (s *Simulation) Store() *Store {
	return s.state.Store
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() config.Config {
	return s.cfg
}
