package core

// Action represents a semantic input action, abstracted from physical key presses.
// Frontends map their own keys onto actions so the simulation never sees a key code.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space, W, Up - flap; also starts and restarts the game
	ActionPause       // P - freeze the clock without touching the simulation
	ActionMute        // M - toggle audio
	ActionQuit        // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two ticks.
// Each action is an edge: a key held down across ticks is only reported once.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// TickInput is everything the simulation receives for one tick.
type TickInput struct {
	DT   float64 // Seconds since the previous tick
	Now  float64 // Monotonic seconds since the clock started
	Jump bool    // Jump edge: true exactly once per key press
}
