package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/astrarun/internal/core"
)

func TestRenderIdleScreen(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	r := NewScreenRenderer(80, 24)

	r.Draw(s.Snapshot())
	out := r.Screen.String()

	if !strings.Contains(out, "ASTRARUN") {
		t.Error("idle overlay missing")
	}
	if !strings.Contains(r.Screen.Row(0), "SCORE 00000") {
		t.Errorf("HUD row = %q", r.Screen.Row(0))
	}
	if !strings.Contains(out, string(PlayerBody)) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, GroundChar) {
		t.Error("ground not drawn")
	}
}

func TestRenderEntities(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	s.Start()
	s.obstacles = []Obstacle{{X: 500, Y: s.kin.ground, Width: 50, Height: 60, Variant: VariantCactus}}
	s.pickups = []Pickup{{X: 700, Y: s.kin.ground - 100, Size: 36, Kind: EffectShield}}

	screen := core.NewScreen(96, 30)
	Render(s.Snapshot(), screen)
	out := screen.String()

	if !strings.ContainsRune(out, CactusChar) {
		t.Error("cactus not drawn")
	}
	if !strings.ContainsRune(out, PickupChar) || !strings.ContainsRune(out, EffectShield.Glyph()) {
		t.Error("pickup not drawn")
	}
	if !strings.Contains(screen.Row(29), "No power-up active") {
		t.Errorf("footer = %q", screen.Row(29))
	}
	if strings.Contains(out, "ASTRARUN") || strings.Contains(out, "PAUSED") {
		t.Error("overlay drawn while running")
	}
}

func TestRenderOverlays(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	s.Start()
	s.Step(1.0)

	screen := core.NewScreen(80, 24)
	s.TogglePause()
	Render(s.Snapshot(), screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	s.TogglePause()
	crash(s)
	Render(s.Snapshot(), screen)
	if !strings.Contains(screen.String(), "NEW RECORD") {
		t.Error("record overlay missing")
	}
	if !strings.Contains(screen.String(), "Score: 620") {
		t.Error("final score missing")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	screen := core.NewScreen(4, 2)
	Render(s.Snapshot(), screen)
}

func TestRenderOverlayTitleCentered(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	s.Start()
	s.TogglePause()

	screen := core.NewScreen(80, 24)
	Render(s.Snapshot(), screen)

	// Box is 5 rows tall, title on its second row.
	row := (24-5)/2 + 1
	x := (80 - len("PAUSED")) / 2
	for i, ch := range "PAUSED" {
		if got := screen.Get(x+i, row); got != ch {
			t.Fatalf("title cell (%d, %d) = %q, want %q", x+i, row, got, ch)
		}
	}
	if c := screen.GetCell(x, row).Color; c != core.ColorBrightYellow {
		t.Errorf("title color = %v", c)
	}
}

func TestRenderPickupGlyphAtCenter(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	s.Start()
	p := Pickup{X: 700, Y: s.kin.ground - 100, Size: 36, Kind: EffectBoost}
	s.pickups = []Pickup{p}

	screen := core.NewScreen(96, 30)
	snap := s.Snapshot()
	Render(snap, screen)

	vp := newViewport(snap, screen)
	cx, cy := p.Bounds().Center()
	if got := screen.Get(vp.col(cx), vp.row(cy)); got != EffectBoost.Glyph() {
		t.Errorf("center cell = %q, want %q", got, EffectBoost.Glyph())
	}
}

func TestRenderNarrowHUDKeepsSpeed(t *testing.T) {
	s := newTestSession(quietConfig(), Options{})
	screen := core.NewScreen(12, 10)
	Render(s.Snapshot(), screen)

	if row := screen.Row(0); !strings.HasPrefix(row, "SPD") {
		t.Errorf("HUD row = %q, want speed readout at column 0", row)
	}
}
