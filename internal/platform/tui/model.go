package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/audio"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// FrontendID is the registry ID of the terminal frontend.
const FrontendID = "tui"

func init() {
	registry.Register(FrontendID, func() registry.Frontend { return Frontend{} })
}

// Frontend runs skyhop in the local terminal.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return FrontendID }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Terminal" }

// Run implements registry.Frontend.
func (Frontend) Run(ctx context.Context, env registry.Env) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	p := tea.NewProgram(
		NewModel(env, width, height),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one game session.
type Model struct {
	sim      *sim.Simulation
	env      registry.Env
	clock    *core.Clock
	screen   *core.Screen
	runtime  core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	sound    *audio.Mutable
	logger   *log.Logger
	input    core.InputFrame
	paused   bool
	quitting bool
}

// NewModel creates a session model for a terminal of the given size.
// env.Seed must already be resolved; recorders rely on it.
func NewModel(env registry.Env, width, height int) Model {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var sound audio.Player = audio.Noop{}
	if env.Sound != nil {
		sound = env.Sound
	}

	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH, rc.Seed = width, height, env.Seed
	if env.TickRate > 0 {
		rc.TickRate = env.TickRate
	}

	h := help.New()
	h.Width = width

	return Model{
		sim:     env.NewSimulation(),
		env:     env,
		clock:   core.NewWallClock(),
		screen:  core.NewScreen(width, playfieldHeight(height)),
		runtime: rc,
		keys:    DefaultKeyMap(),
		help:    h,
		sound:   audio.NewMutable(sound, env.Muted),
		logger:  logger,
		input:   core.NewInputFrame(),
	}
}

// playfieldHeight leaves one row for the help footer.
func playfieldHeight(h int) int {
	return max(1, h-1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		if m.paused {
			m.paused = false
			return m, nil
		}
		m.input.Set(core.ActionJump)
	case core.ActionPause:
		m.paused = !m.paused
		if m.paused {
			m.clock.Hold()
		}
	case core.ActionMute:
		muted := m.sound.ToggleMute()
		m.logger.Debug("sound toggled", "muted", muted)
	}

	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.runtime.TickRate)
	}

	in := m.clock.Tick(t, m.input.Has(core.ActionJump))
	out := m.sim.Tick(in)
	m.env.Observe(in, out)
	audio.Dispatch(m.sound, out.Events)
	logEvents(m.logger, out.Events)

	m.input.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// logEvents reports mode changes and crashes.
func logEvents(logger *log.Logger, events []sim.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case sim.ModeChanged:
			logger.Debug("mode changed", "from", e.From, "to", e.To)
		case sim.Crashed:
			logger.Info("run ended", "score", e.Score)
		}
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	DrawSnapshot(m.screen, m.sim.Snapshot(), m.overlay())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".skyhop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	name := fmt.Sprintf("skyhop_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) overlay() Overlay {
	return Overlay{Paused: m.paused, Muted: m.sound.Muted()}
}

// View renders the current frame and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawSnapshot(m.screen, m.sim.Snapshot(), m.overlay())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Simulation exposes the session's simulation.
func (m Model) Simulation() *sim.Simulation {
	return m.sim
}

// Paused reports whether the session is paused.
func (m Model) Paused() bool {
	return m.paused
}
