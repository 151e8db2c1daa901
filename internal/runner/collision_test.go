package runner

import (
	"testing"

	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
)

func newTestResolver() (*Resolver, *config.DifficultyManager) {
	cfg := config.DefaultGameConfig()
	diff := config.NewDifficultyManager(cfg)
	return NewResolver(cfg, diff), diff
}

// standingHitbox is the default player hitbox on the ground line 298.
var standingHitbox = core.NewRect(116, 236, 40, 62)

func groundObstacle(x float64) Obstacle {
	return Obstacle{X: x, Y: 298, Width: 50, Height: 60, Class: ClassGround, Variant: VariantCactus}
}

func TestResolveObstaclesScrollsAndPrunes(t *testing.T) {
	r, diff := newTestResolver()
	obs := []Obstacle{
		{X: -60, Y: 298, Width: 50, Height: 60, SpeedOffset: 0.5},
		{X: 700, Y: 298, Width: 50, Height: 60, SpeedOffset: 0.5},
	}

	kept, outcome := r.ResolveObstacles(obs, 0.01, 6.2, 1, standingHitbox, false)
	if outcome != HitNone {
		t.Fatalf("outcome = %v", outcome)
	}
	if len(kept) != 1 {
		t.Fatalf("off-screen obstacle not pruned: %d left", len(kept))
	}
	want := 700 - diff.ObstacleShift(6.2, 1, 0.5, 0.01)
	if !approxEqual(kept[0].X, want) {
		t.Errorf("x = %v, want %v", kept[0].X, want)
	}
}

func TestResolveObstaclesSlowFactor(t *testing.T) {
	r, _ := newTestResolver()
	normal, _ := r.ResolveObstacles([]Obstacle{groundObstacle(700)}, 0.5, 6, 1, standingHitbox, false)
	slowed, _ := r.ResolveObstacles([]Obstacle{groundObstacle(700)}, 0.5, 6, 0.62, standingHitbox, false)

	if !approxEqual(700-normal[0].X, 210) || !approxEqual(700-slowed[0].X, 130.2) {
		t.Errorf("shifts: normal=%v slowed=%v", 700-normal[0].X, 700-slowed[0].X)
	}
}

func TestShieldAbsorbsSingleHit(t *testing.T) {
	r, _ := newTestResolver()
	obs := []Obstacle{groundObstacle(120), groundObstacle(700)}

	kept, outcome := r.ResolveObstacles(obs, 0, 6.2, 1, standingHitbox, true)
	if outcome != HitAbsorbed {
		t.Fatalf("outcome = %v, want absorbed", outcome)
	}
	if len(kept) != 1 || kept[0].X != 700 {
		t.Errorf("expected only the far obstacle left, got %+v", kept)
	}
}

func TestShieldOnlyCoversFirstHit(t *testing.T) {
	r, _ := newTestResolver()
	obs := []Obstacle{groundObstacle(100), groundObstacle(130)}

	kept, outcome := r.ResolveObstacles(obs, 0, 6.2, 1, standingHitbox, true)
	if outcome != HitTerminal {
		t.Fatalf("outcome = %v, want terminal", outcome)
	}
	if len(kept) != 1 || kept[0].X != 130 {
		t.Errorf("second obstacle should remain, got %+v", kept)
	}
}

func TestTerminalHitKeepsList(t *testing.T) {
	r, _ := newTestResolver()
	obs := []Obstacle{groundObstacle(600), groundObstacle(120), groundObstacle(800)}

	kept, outcome := r.ResolveObstacles(obs, 0, 6.2, 1, standingHitbox, false)
	if outcome != HitTerminal {
		t.Fatalf("outcome = %v, want terminal", outcome)
	}
	if len(kept) != 3 {
		t.Fatalf("terminal hit removed obstacles: %+v", kept)
	}
	if kept[1].X != 120 {
		t.Errorf("hit obstacle missing: %+v", kept)
	}
}

func TestObstacleInset(t *testing.T) {
	r, _ := newTestResolver()

	// Visual bounds overlap by 3 units but the 4 unit inset clears it.
	_, outcome := r.ResolveObstacles([]Obstacle{groundObstacle(153)}, 0, 6.2, 1, standingHitbox, false)
	if outcome != HitNone {
		t.Errorf("inset should prevent hit, got %v", outcome)
	}
}

func TestAerialClearsDashingPlayer(t *testing.T) {
	r, _ := newTestResolver()
	aerial := Obstacle{X: 110, Y: 298 - 44, Width: 72, Height: 42, Class: ClassAerial}
	dashing := core.NewRect(116, 298-34.1, 40, 34.1)

	if _, outcome := r.ResolveObstacles([]Obstacle{aerial}, 0, 6.2, 1, dashing, false); outcome != HitNone {
		t.Errorf("dashing player hit aerial obstacle")
	}
	if _, outcome := r.ResolveObstacles([]Obstacle{aerial}, 0, 6.2, 1, standingHitbox, false); outcome != HitTerminal {
		t.Errorf("standing player should hit aerial obstacle")
	}
}

func TestResolvePickups(t *testing.T) {
	r, diff := newTestResolver()
	pus := []Pickup{
		{X: 120, Y: 250, Size: 36, Kind: EffectBoost},
		{X: 600, Y: 200, Size: 36, Kind: EffectShield},
		{X: -40, Y: 200, Size: 36, Kind: EffectSlow},
	}

	kept, collected := r.ResolvePickups(pus, 0.01, 6.2, 1, standingHitbox)
	if len(collected) != 1 || collected[0] != EffectBoost {
		t.Fatalf("collected = %v", collected)
	}
	if len(kept) != 1 || kept[0].Kind != EffectShield {
		t.Fatalf("kept = %+v", kept)
	}
	if want := 600 - diff.PowerupShift(6.2, 1, 0.01); !approxEqual(kept[0].X, want) {
		t.Errorf("x = %v, want %v", kept[0].X, want)
	}
}
