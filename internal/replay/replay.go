// Package replay records the input of a skyhop session and plays it back
// headlessly. A tape stores the seed, a fingerprint of the configuration and
// each tick's (dt, jump) pair; everything else, collisions included, is
// recomputed by the simulation.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// ErrConfigMismatch is returned when a tape is replayed with a configuration
// other than the one it was recorded with.
var ErrConfigMismatch = errors.New("replay: configuration does not match tape")

// Frame is the input of one tick.
type Frame struct {
	DT   float64
	Jump bool
}

// Tape is a recorded session.
type Tape struct {
	Seed        int64
	Fingerprint string // config.Fingerprint of the recording configuration
	TickRate    int    // Informational; frames carry their own dt
	Frames      []Frame
}

// Result summarizes a replayed tape.
type Result struct {
	Runs  []int // Final score of every run that ended in a crash, in order
	Ticks int
	Mode  sim.Mode // Mode after the last frame
	Score int      // Score of the unfinished run, if any
}

// Best returns the highest finished run score, or 0.
func (r Result) Best() int {
	best := 0
	for _, s := range r.Runs {
		best = max(best, s)
	}
	return best
}

// Recorder collects frames as a frontend ticks its simulation.
// Its Observe method fits registry.TickObserver.
type Recorder struct {
	tape Tape
	runs []int
}

// NewRecorder starts a tape for a session with the given seed and config.
func NewRecorder(seed int64, cfg config.Config, tickRate int) *Recorder {
	return &Recorder{
		tape: Tape{
			Seed:        seed,
			Fingerprint: config.Fingerprint(cfg),
			TickRate:    tickRate,
			Frames:      make([]Frame, 0, 1024),
		},
	}
}

// Observe appends the tick's input and notes finished runs.
func (r *Recorder) Observe(in core.TickInput, out sim.Output) {
	r.tape.Frames = append(r.tape.Frames, Frame{DT: in.DT, Jump: in.Jump})
	for _, e := range out.Events {
		if c, ok := e.(sim.Crashed); ok {
			r.runs = append(r.runs, c.Score)
		}
	}
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.tape.Frames)
}

// Runs returns the final scores of the runs recorded so far.
func (r *Recorder) Runs() []int {
	return append([]int(nil), r.runs...)
}

// Finish returns the tape. The recorder must not be used afterwards.
func (r *Recorder) Finish() Tape {
	t := r.tape
	r.tape.Frames = nil
	return t
}

// Run replays tape against cfg. The configuration must be the one the tape
// was recorded with.
func Run(tape Tape, cfg config.Config) (Result, error) {
	if fp := config.Fingerprint(cfg); fp != tape.Fingerprint {
		return Result{}, fmt.Errorf("%w: tape %s, config %s", ErrConfigMismatch, tape.Fingerprint, fp)
	}

	s := sim.New(cfg, tape.Seed)
	clock := core.NewFixedClock(tape.TickRate)

	var res Result
	for _, f := range tape.Frames {
		out := s.Tick(clock.Advance(f.DT, f.Jump))
		for _, e := range out.Events {
			if c, ok := e.(sim.Crashed); ok {
				res.Runs = append(res.Runs, c.Score)
			}
		}
	}

	res.Ticks = s.Ticks()
	res.Mode = s.Mode()
	res.Score = s.Score()
	return res, nil
}
