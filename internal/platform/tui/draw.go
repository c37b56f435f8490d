package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/sim"
)

// Glyphs and palettes per entity kind.
const (
	cloudRune    = '░'
	solidRune    = '█'
	playerRune   = '▓'
	beakRune     = '>'
	statusMuted  = "[muted]"
	statusPaused = "PAUSED"
)

var (
	cloudShades    = []core.Color{core.ColorLightGray, core.ColorBrightWhite}
	buildingShades = []core.Color{core.ColorCharcoal, core.ColorDarkGray, core.ColorGray}
)

// Projector maps world coordinates (origin at the center, +Y up) onto a
// character grid (origin at the top-left, +Y down).
type Projector struct {
	world      core.Vec2
	cols, rows int
}

// NewProjector creates a projector for a world of the given size shown on a
// cols x rows grid.
func NewProjector(world core.Vec2, cols, rows int) Projector {
	return Projector{world: world, cols: cols, rows: rows}
}

// Cell returns the grid cell containing world point v.
func (p Projector) Cell(v core.Vec2) (x, y int) {
	sx, sy := p.scale()
	x = int(math.Floor((v.X + p.world.X/2) * sx))
	y = int(math.Floor((p.world.Y/2 - v.Y) * sy))
	return x, y
}

// Rect returns the cells covered by b, clipped to the grid. Boxes smaller than
// a cell still cover one cell. The second result is false when nothing is visible.
func (p Projector) Rect(b core.Box) (core.Rect, bool) {
	sx, sy := p.scale()
	lo, hi := b.Min(), b.Max()

	left := math.Floor((lo.X + p.world.X/2) * sx)
	right := math.Ceil((hi.X + p.world.X/2) * sx)
	top := math.Floor((p.world.Y/2 - hi.Y) * sy)
	bottom := math.Ceil((p.world.Y/2 - lo.Y) * sy)

	r := core.NewRect(int(left), int(top), max(1, int(right-left)), max(1, int(bottom-top)))
	grid := core.NewRect(0, 0, p.cols, p.rows)
	if !r.Intersects(grid) {
		return core.Rect{}, false
	}

	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.Right(), p.cols), min(r.Bottom(), p.rows)
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

func (p Projector) scale() (sx, sy float64) {
	if p.world.X <= 0 || p.world.Y <= 0 {
		return 0, 0
	}
	return float64(p.cols) / p.world.X, float64(p.rows) / p.world.Y
}

// Overlay is the frontend state drawn on top of the playfield.
type Overlay struct {
	Paused bool
	Muted  bool
}

// DrawSnapshot renders a full frame into dst: entities back to front, then the
// score, the mode banner and status flags.
func DrawSnapshot(dst *core.Screen, snap sim.Snapshot, ov Overlay) {
	dst.Clear()
	proj := NewProjector(snap.World, dst.Width(), dst.Height())

	for _, e := range snap.Entities {
		drawEntity(dst, proj, e)
	}

	for i, line := range snap.HUD() {
		dst.DrawTextColored(1, i, line, core.ColorBrightWhite)
	}

	if ov.Muted {
		dst.DrawTextColored(dst.Width()-len(statusMuted)-1, 0, statusMuted, core.ColorGray)
	}

	lines := bannerLines(snap)
	if ov.Paused {
		lines = []string{statusPaused, "Press " + JumpLabel + " or P to resume"}
	}
	drawBanner(dst, lines)
}

func drawEntity(dst *core.Screen, proj Projector, e sim.EntityView) {
	if e.Kind == sim.KindCamera {
		return
	}
	r, ok := proj.Rect(e.Bounds)
	if !ok {
		return
	}

	switch e.Kind {
	case sim.KindDecor:
		if e.Layer == sim.LayerFar {
			drawEllipse(dst, r, cloudRune, shade(cloudShades, e.Shade))
			return
		}
		dst.DrawRect(r, solidRune, shade(buildingShades, e.Shade))
	case sim.KindObstacle:
		dst.DrawRect(r, solidRune, core.ColorGreen)
	case sim.KindPlayer:
		dst.DrawRect(r, playerRune, core.ColorYellow)
		dst.SetColored(r.Right()-1, r.Y, beakRune, core.ColorOrange)
	}
}

// drawEllipse fills the cells of r whose centers lie inside the inscribed ellipse.
func drawEllipse(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	if r.W <= 2 || r.H <= 1 {
		dst.DrawRect(r, ch, c)
		return
	}
	cx, cy := float64(r.X)+float64(r.W)/2, float64(r.Y)+float64(r.H)/2
	a, b := float64(r.W)/2, float64(r.H)/2
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dx := (float64(x) + 0.5 - cx) / a
			dy := (float64(y) + 0.5 - cy) / b
			if dx*dx+dy*dy <= 1 {
				dst.SetColored(x, y, ch, c)
			}
		}
	}
}

func shade(palette []core.Color, i uint8) core.Color {
	if int(i) >= len(palette) {
		return palette[len(palette)-1]
	}
	return palette[i]
}

// bannerLines returns the mode text with the key label filled in.
func bannerLines(snap sim.Snapshot) []string {
	if snap.Banner == "" {
		return nil
	}
	text := strings.ReplaceAll(snap.Banner, sim.JumpPlaceholder, JumpLabel)
	lines := strings.Split(text, "\n")
	if snap.Mode == sim.ModeGameOver {
		lines = append(lines, "", sim.ScoreText(snap.RunScore)+"   Best: "+strconv.Itoa(snap.Best))
	}
	return lines
}

// drawBanner draws lines centered in a box in the middle of the screen.
func drawBanner(dst *core.Screen, lines []string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
