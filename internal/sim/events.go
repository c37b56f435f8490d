package sim

// Sound names understood by audio collaborators.
const (
	SoundJump  = "jump"
	SoundCrash = "crash"
)

// Event is something collaborators may react to after a tick.
// Events are returned in emission order and never fed back into the same tick.
type Event interface {
	event()
}

// Sound asks the audio collaborator to play a named effect.
type Sound struct {
	Name string
}

// ModeChanged is emitted after a transition and its teardown completed.
type ModeChanged struct {
	From, To Mode
}

// Scored is emitted each time the score increases.
type Scored struct {
	Score  int
	PairID uint32
}

// Crashed is emitted on a fatal collision. Score is the run's final score,
// captured before the reset to zero.
type Crashed struct {
	Score int
}

func (Sound) event()       {}
func (ModeChanged) event() {}
func (Scored) event()      {}
func (Crashed) event()     {}
