package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/astrarun/internal/core"
)

// Visual characters for rendering
const (
	PlayerBody   = '█'
	PlayerHead   = '◆'
	ShieldChar   = '░'
	GroundChar   = '▀'
	CactusChar   = '▓'
	ChairChar    = '╥'
	PteroChar    = '▼'
	DroneChar    = '◘'
	PickupChar   = '▒'
	RainChar     = '│'
	DotChar      = '·'
	BigDotChar   = '•'
	SunChar      = '☀'
	MoonChar     = '☾'
	hudRows      = 2 // Score line and status line
	footerRows   = 1 // Power-up status line
	nightCutover = 0.35
)

// viewport maps world units onto the playfield rows of a screen.
type viewport struct {
	top    int
	sx, sy float64
}

func newViewport(snap Snapshot, dst *core.Screen) viewport {
	rows := max(dst.Height()-hudRows-footerRows, 1)
	return viewport{
		top: hudRows,
		sx:  float64(dst.Width()) / snap.WorldWidth,
		sy:  float64(rows) / snap.WorldHeight,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// cells converts a world rectangle into a cell rectangle at least one cell in size.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x = v.col(r.X)
	y = v.row(r.Y)
	w = max(int(math.Ceil(r.Right()*v.sx))-x, 1)
	h = max(v.top+int(math.Ceil(r.Bottom()*v.sy))-y, 1)
	return x, y, w, h
}

// Render draws a snapshot onto dst.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if snap.WorldWidth <= 0 || snap.WorldHeight <= 0 {
		return
	}
	vp := newViewport(snap, dst)

	drawSky(snap, vp, dst)
	drawParticles(snap, vp, dst)
	drawGround(snap, vp, dst)
	for _, o := range snap.Obstacles {
		drawObstacle(o, vp, dst)
	}
	for _, p := range snap.Pickups {
		drawPickup(p, vp, dst)
	}
	drawPlayer(snap, vp, dst)
	drawHUD(snap, dst)

	switch snap.Phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "ASTRARUN", "Enter: start  Space: jump  Down: dash")
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseEnded:
		title := "GAME OVER"
		if snap.NewRecord {
			title = "NEW RECORD"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Enter to retry", snap.DisplayScore()))
	}
}

func drawSky(snap Snapshot, vp viewport, dst *core.Screen) {
	x := dst.Width() - 3
	y := vp.top
	if snap.Daylight() < nightCutover {
		dst.SetColored(x, y, MoonChar, core.ColorBrightWhite)
		return
	}
	dst.SetColored(x, y, SunChar, core.ColorBrightYellow)
}

func drawParticles(snap Snapshot, vp viewport, dst *core.Screen) {
	for _, p := range snap.Particles {
		x, y := vp.col(p.Pos.X()), vp.row(p.Pos.Y())
		if y < vp.top {
			continue
		}
		switch p.Shape {
		case ShapeStreak:
			length := max(int(math.Round(p.Size*vp.sy)), 1)
			dst.DrawVLine(x, y, length, RainChar, p.Tint)
		default:
			r := DotChar
			if p.Size >= 2 {
				r = BigDotChar
			}
			dst.SetColored(x, y, r, p.Tint)
		}
	}
}

func drawGround(snap Snapshot, vp viewport, dst *core.Screen) {
	c := core.ColorGreen
	if snap.Daylight() < nightCutover {
		c = core.ColorBlue
	}
	y := vp.row(snap.GroundLevel)
	dst.DrawHLine(0, y, dst.Width(), GroundChar, c)
	for row := y + 1; row < dst.Height()-footerRows; row++ {
		dst.DrawHLine(0, row, dst.Width(), ' ', core.ColorDefault)
	}
}

func drawObstacle(o Obstacle, vp viewport, dst *core.Screen) {
	x, y, w, h := vp.cells(o.Bounds())
	switch o.Variant {
	case VariantCactus:
		dst.DrawRect(x, y, w, h, CactusChar, core.ColorBrightGreen)
	case VariantChair:
		dst.DrawRect(x, y, w, h, ChairChar, core.ColorOrange)
	case VariantPtero:
		dst.DrawRect(x, y, w, h, PteroChar, core.ColorMagenta)
	default:
		dst.DrawRect(x, y, w, h, DroneChar, core.ColorCyan)
	}
}

func pickupColor(kind EffectKind) core.Color {
	switch kind {
	case EffectShield:
		return core.ColorBrightCyan
	case EffectBoost:
		return core.ColorPink
	default:
		return core.ColorLime
	}
}

func drawPickup(p Pickup, vp viewport, dst *core.Screen) {
	x, y, w, h := vp.cells(p.Bounds())
	c := pickupColor(p.Kind)
	dst.DrawRect(x, y, w, h, PickupChar, c)
	cx, cy := p.Bounds().Center()
	dst.SetColored(vp.col(cx), vp.row(cy), p.Kind.Glyph(), core.ColorBrightWhite)
}

func drawPlayer(snap Snapshot, vp viewport, dst *core.Screen) {
	p := snap.Player
	h := p.Height
	if p.Dashing() {
		h = snap.Hitbox.H
	}
	x, y, w, rows := vp.cells(core.NewRect(p.X, p.Y-h, p.Width, h))

	c := core.ColorBrightWhite
	switch snap.Effect.Kind {
	case EffectShield:
		c = core.ColorBrightCyan
	case EffectBoost:
		c = core.ColorPink
	case EffectSlow:
		c = core.ColorLime
	}

	dst.DrawRect(x, y, w, rows, PlayerBody, c)
	dst.SetColored(x+w-1, y, PlayerHead, core.ColorBrightYellow)
	if snap.Shielded {
		dst.DrawVLine(x+w, y, rows, ShieldChar, core.ColorBrightCyan)
	}
}

func drawHUD(snap Snapshot, dst *core.Screen) {
	left := fmt.Sprintf(" SCORE %05d  HI %05d", snap.DisplayScore(), snap.HighScore)
	right := fmt.Sprintf("SPD %.1f  %s ", snap.Speed, snap.Weather)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(core.Clamp(dst.Width()-len([]rune(right)), 0, dst.Width()), 0, right, core.ColorGray)
	dst.DrawTextColored(1, 1, snap.Message, core.ColorYellow)

	status := snap.PowerupStatus
	c := core.ColorGray
	if snap.Effect.Active() {
		c = pickupColor(snap.Effect.Kind)
	}
	dst.DrawTextColored(1, dst.Height()-1, status, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextCenteredColored(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle)
}

// ScreenRenderer draws snapshots into a screen buffer.
type ScreenRenderer struct {
	Screen *core.Screen
}

// NewScreenRenderer creates a renderer with a width x height buffer.
func NewScreenRenderer(width, height int) *ScreenRenderer {
	return &ScreenRenderer{Screen: core.NewScreen(width, height)}
}

// Draw implements Renderer.
func (r *ScreenRenderer) Draw(snap Snapshot) {
	Render(snap, r.Screen)
}
