package sim

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// State is all mutable simulation data. Systems receive it by pointer and are
// its only writers; nothing here is shared across goroutines.
type State struct {
	Mode          Mode
	Score         int     // Pairs passed in the current run; 0 after a crash
	LastSpawnTime float64 // Clock time of the last obstacle spawn
	Gravity       float64 // Current fall acceleration accumulator (<= 0 between jumps)
	RunScore      int     // Score of the last finished run
	Best          int     // Best RunScore this process; never persisted
	Store         *Store

	nextPair uint32
	passed   map[uint32]bool // Pairs whose leading member already scored
}

func newState() State {
	return State{
		Mode:   ModeMainMenu,
		Store:  NewStore(),
		passed: make(map[uint32]bool),
	}
}

// tick carries the per-tick inputs and outputs that systems share.
type tick struct {
	cfg *config.Config
	rng Random
	in  core.TickInput

	events     []Event
	next       Mode
	transition bool
	crashed    bool
}

func (t *tick) emit(e Event) {
	t.events = append(t.events, e)
}

// request schedules a mode change for the end of the tick.
// The first request wins; a crash cannot be overridden later in the same tick.
func (t *tick) request(to Mode) {
	if t.transition {
		return
	}
	t.next = to
	t.transition = true
}
