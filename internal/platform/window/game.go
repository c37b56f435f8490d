// Package window is the desktop frontend for skyhop, built on Ebitengine.
// It runs the simulation at a fixed TPS and draws snapshots with vector
// primitives at 1280x720.
package window

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/skyhop/internal/audio"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// FrontendID is the registry ID of the window frontend.
const FrontendID = "window"

// Logical surface size.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	// JumpLabel replaces the jump placeholder in mode banners.
	JumpLabel = "SPACE"

	glyphW, glyphH = 6, 16 // ebitenutil debug font cell
	cloudStrips    = 8
)

func init() {
	registry.Register(FrontendID, func() registry.Frontend { return Frontend{} })
}

// Frontend runs skyhop in a desktop window.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return FrontendID }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Window" }

// Run implements registry.Frontend.
func (Frontend) Run(ctx context.Context, env registry.Env) error {
	g := NewGame(ctx, env)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("skyhop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tickRate)

	return ebiten.RunGame(g)
}

// Controls is the input polled for one tick.
type Controls struct {
	Jump  bool
	Pause bool
	Mute  bool
	Quit  bool
}

// PollControls reads just-pressed keys from Ebitengine.
func PollControls() Controls {
	return Controls{
		Jump: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW),
		Pause: inpututil.IsKeyJustPressed(ebiten.KeyP),
		Mute:  inpututil.IsKeyJustPressed(ebiten.KeyM),
		Quit: inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// Game implements ebiten.Game around one simulation.
type Game struct {
	ctx      context.Context
	sim      *sim.Simulation
	env      registry.Env
	clock    *core.Clock
	tickRate int
	sound    *audio.Mutable
	logger   *log.Logger
	view     Viewport
	paused   bool
}

// NewGame creates a game. It stops when ctx is cancelled.
func NewGame(ctx context.Context, env registry.Env) *Game {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var sound audio.Player = audio.Noop{}
	if env.Sound != nil {
		sound = env.Sound
	}
	tickRate := env.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s := env.NewSimulation()
	snap := s.Snapshot()
	return &Game{
		ctx:      ctx,
		sim:      s,
		env:      env,
		clock:    core.NewFixedClock(tickRate),
		tickRate: tickRate,
		sound:    audio.NewMutable(sound, env.Muted),
		logger:   logger,
		view:     NewViewport(snap.World, ScreenWidth, ScreenHeight),
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return g.Step(PollControls())
}

// Step advances the game by one fixed tick with the given controls.
// Returns ebiten.Termination when the player quits.
func (g *Game) Step(c Controls) error {
	if c.Quit {
		return ebiten.Termination
	}
	if c.Mute {
		muted := g.sound.ToggleMute()
		g.logger.Debug("sound toggled", "muted", muted)
	}
	if c.Pause {
		g.paused = !g.paused
		return nil
	}
	if g.paused {
		if c.Jump {
			g.paused = false
		}
		return nil
	}

	in := g.clock.Tick(time.Now(), c.Jump)
	out := g.sim.Tick(in)
	g.env.Observe(in, out)
	audio.Dispatch(g.sound, out.Events)

	for _, e := range out.Events {
		switch e := e.(type) {
		case sim.ModeChanged:
			g.logger.Debug("mode changed", "from", e.From, "to", e.To)
		case sim.Crashed:
			g.logger.Info("run ended", "score", e.Score)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	snap := g.sim.Snapshot()

	for _, e := range snap.Entities {
		g.drawEntity(screen, e)
	}

	for i, line := range snap.HUD() {
		ebitenutil.DebugPrintAt(screen, line, 10, 8+i*glyphH)
	}
	if g.sound.Muted() {
		ebitenutil.DebugPrintAt(screen, "[muted]", ScreenWidth-10-7*glyphW, 8)
	}

	lines := BannerLines(snap)
	if g.paused {
		lines = []string{"PAUSED", "Press " + JumpLabel + " or P to resume"}
	}
	drawBanner(screen, lines)
}

func (g *Game) drawEntity(screen *ebiten.Image, e sim.EntityView) {
	if e.Kind == sim.KindCamera || !g.view.Visible(e.Bounds) {
		return
	}
	x, y, w, h := g.view.Rect(e.Bounds)
	clr := entityColor(e)

	switch {
	case e.Kind == sim.KindDecor && e.Layer == sim.LayerFar:
		drawEllipse(screen, x, y, w, h, e)
	case e.Kind == sim.KindPlayer:
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
		vector.DrawFilledRect(screen, x+w*0.75, y+h*0.35, w*0.25, h*0.2, beakColor, false)
		vector.DrawFilledCircle(screen, x+w*0.65, y+h*0.25, h*0.08, panelColor, true)
	default:
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
	}
}

// drawEllipse fills the ellipse inscribed in the rectangle with horizontal strips.
func drawEllipse(screen *ebiten.Image, x, y, w, h float32, e sim.EntityView) {
	clr := entityColor(e)
	if h < cloudStrips {
		vector.DrawFilledRect(screen, x, y, w, h, clr, true)
		return
	}
	strip := h / cloudStrips
	for i := range cloudStrips {
		// Half-width at the strip's vertical midpoint.
		dy := (float64(i)+0.5)/cloudStrips*2 - 1
		half := float32(math.Sqrt(1-dy*dy)) * w / 2
		vector.DrawFilledRect(screen, x+w/2-half, y+float32(i)*strip, half*2, strip+0.5, clr, true)
	}
}

// BannerLines returns the mode text with the key label filled in.
func BannerLines(snap sim.Snapshot) []string {
	if snap.Banner == "" {
		return nil
	}
	text := strings.ReplaceAll(snap.Banner, sim.JumpPlaceholder, JumpLabel)
	lines := strings.Split(text, "\n")
	if snap.Mode == sim.ModeGameOver {
		lines = append(lines, sim.ScoreText(snap.RunScore)+"   Best: "+strconv.Itoa(snap.Best))
	}
	return lines
}

func drawBanner(screen *ebiten.Image, lines []string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}

	pw, ph := width*glyphW+40, len(lines)*glyphH+24
	px, py := (ScreenWidth-pw)/2, (ScreenHeight-ph)/2
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), panelColor, false)

	for i, l := range lines {
		lx := (ScreenWidth - len(l)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, l, lx, py+12+i*glyphH)
	}
}

// Layout implements ebiten.Game. The logical surface is fixed; Ebitengine
// scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Simulation exposes the game's simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}
