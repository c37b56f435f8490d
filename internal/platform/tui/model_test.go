package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/sim"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	pauseKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}
	muteKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

// recordingPlayer collects effect names.
type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(name string) {
	p.played = append(p.played, name)
}

func testEnv() registry.Env {
	return registry.Env{Config: config.Default(), Seed: 1, TickRate: 60}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModelJumpStartsRun(t *testing.T) {
	var observed []core.TickInput
	env := testEnv()
	env.Observer = func(in core.TickInput, _ sim.Output) {
		observed = append(observed, in)
	}

	m := NewModel(env, 80, 24)
	now := time.Now()

	m, _ = update(t, m, spaceKey)
	m, cmd := update(t, m, TickMsg(now))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.Simulation().Mode() != sim.ModePlaying {
		t.Fatalf("mode = %s after jump, want playing", m.Simulation().Mode())
	}

	// The jump edge is consumed by one tick.
	m, _ = update(t, m, TickMsg(now.Add(16*time.Millisecond)))
	if len(observed) != 2 {
		t.Fatalf("observer saw %d ticks, want 2", len(observed))
	}
	if !observed[0].Jump || observed[1].Jump {
		t.Errorf("jump flags = %v, %v; want true, false", observed[0].Jump, observed[1].Jump)
	}
	if observed[1].DT <= 0 {
		t.Errorf("second tick dt = %v, want positive", observed[1].DT)
	}
}

func TestModelPauseHoldsSimulation(t *testing.T) {
	m := NewModel(testEnv(), 80, 24)
	now := time.Now()

	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, pauseKey)
	if !m.Paused() {
		t.Fatal("not paused after P")
	}

	ticks := m.Simulation().Ticks()
	m, cmd := update(t, m, TickMsg(now.Add(time.Second)))
	if cmd == nil {
		t.Error("paused model stopped ticking")
	}
	if m.Simulation().Ticks() != ticks {
		t.Error("simulation advanced while paused")
	}
	if !strings.Contains(m.View(), statusPaused) {
		t.Error("view lacks paused banner")
	}

	// Jump resumes without jumping.
	m, _ = update(t, m, spaceKey)
	if m.Paused() {
		t.Fatal("still paused after jump key")
	}
	m, _ = update(t, m, TickMsg(now.Add(2*time.Second)))
	p, ok := m.Simulation().Store().Player()
	if !ok {
		t.Fatal("no player")
	}
	if p.Velocity.Y >= config.Default().Physics.JumpVelocity {
		t.Errorf("player velocity = %v after resume; resume key must not jump", p.Velocity.Y)
	}
}

func TestModelSoundAndMute(t *testing.T) {
	p := &recordingPlayer{}
	env := testEnv()
	env.Sound = p

	m := NewModel(env, 80, 24)
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg(time.Now()))

	if len(p.played) != 1 || p.played[0] != sim.SoundJump {
		t.Fatalf("played = %v, want one jump", p.played)
	}

	m, _ = update(t, m, muteKey)
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg(time.Now()))
	if len(p.played) != 1 {
		t.Errorf("played = %v after mute", p.played)
	}
	if !strings.Contains(m.View(), statusMuted) {
		t.Error("view lacks muted flag")
	}
}

func TestModelStartsMuted(t *testing.T) {
	p := &recordingPlayer{}
	env := testEnv()
	env.Sound = p
	env.Muted = true

	m := NewModel(env, 80, 24)
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, spaceKey)
	update(t, m, TickMsg(time.Now()))

	if len(p.played) != 0 {
		t.Errorf("played = %v while muted", p.played)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testEnv(), 80, 24)
	m, cmd := update(t, m, quitKey)
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command does not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(testEnv(), 80, 24)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 40 {
		t.Errorf("view has %d lines, want 40", len(lines))
	}
}

func TestModelViewMenu(t *testing.T) {
	view := NewModel(testEnv(), 80, 24).View()
	if !strings.Contains(view, "SPACE") {
		t.Error("menu view lacks the key label")
	}
	if !strings.Contains(view, "jump") {
		t.Error("menu view lacks help footer")
	}
}

func TestPlayfieldHeight(t *testing.T) {
	if got := playfieldHeight(1); got != 1 {
		t.Errorf("playfieldHeight(1) = %d", got)
	}
	if got := playfieldHeight(24); got != 23 {
		t.Errorf("playfieldHeight(24) = %d", got)
	}
}
