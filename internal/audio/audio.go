// Package audio plays the simulation's sound events through the system speaker.
// Playback is fire-and-forget: a sound is queued on a shared mixer and nothing
// waits for it to finish.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// Player plays named sound effects.
type Player interface {
	Play(name string)
}

// Noop discards every sound. It is used when audio is disabled or the
// speaker could not be opened.
type Noop struct{}

// Play implements Player.
func (Noop) Play(string) {}

// Dispatch forwards every Sound event to p, in order.
func Dispatch(p Player, events []sim.Event) {
	for _, e := range events {
		if s, ok := e.(sim.Sound); ok {
			p.Play(s.Name)
		}
	}
}

// The speaker is process-global and can only be initialized once.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// Speaker plays sounds on the default output device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	logger *log.Logger
}

// NewSpeaker opens the output device at cfg.SampleRate and starts the mixer.
func NewSpeaker(cfg config.Audio, logger *log.Logger) (*Speaker, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", speakerErr)
	}

	s := &Speaker{
		mixer:  &beep.Mixer{},
		rate:   speakerRate,
		volume: cfg.Volume,
		logger: logger,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Open returns a Speaker when audio is enabled, and Noop otherwise or when the
// device cannot be opened.
func Open(cfg config.Audio, logger *log.Logger) Player {
	if !cfg.Enabled {
		return Noop{}
	}
	s, err := NewSpeaker(cfg, logger)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
		return Noop{}
	}
	return s
}

// Play implements Player.
func (s *Speaker) Play(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Effect(name, s.rate, s.volume)
	if st == nil {
		s.logger.Warn("unknown sound", "name", name)
		return
	}

	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops every queued sound. The device itself stays open for the
// process lifetime.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Mutable wraps any Player with a mute switch.
type Mutable struct {
	mu    sync.Mutex
	p     Player
	muted bool
}

// NewMutable wraps p.
func NewMutable(p Player, muted bool) *Mutable {
	return &Mutable{p: p, muted: muted}
}

// Play implements Player.
func (m *Mutable) Play(name string) {
	m.mu.Lock()
	muted := m.muted
	m.mu.Unlock()
	if !muted {
		m.p.Play(name)
	}
}

// ToggleMute flips the mute switch and returns the new state.
func (m *Mutable) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

// Muted reports the current mute state.
func (m *Mutable) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}
