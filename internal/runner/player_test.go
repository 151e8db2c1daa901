package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/astrarun/internal/config"
)

func testKinematics() (kinematics, config.GameConfig) {
	cfg := config.DefaultGameConfig()
	return newKinematics(cfg), cfg
}

func TestJumpFromGround(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)

	k.requestJump(&p)
	if !k.update(&p, 0.01) {
		t.Fatal("jump on ground should fire immediately")
	}
	if p.VelocityY >= 0 || !p.Jumping {
		t.Errorf("expected upward velocity, got vy=%v jumping=%v", p.VelocityY, p.Jumping)
	}
	if p.CoyoteTimer != 0 || p.JumpBufferTimer != 0 {
		t.Errorf("timers not cleared: coyote=%v buffer=%v", p.CoyoteTimer, p.JumpBufferTimer)
	}

	for i := 0; i < 4; i++ {
		if k.update(&p, 0.01) {
			t.Fatalf("second jump fired on step %d without a new request", i+2)
		}
	}
}

func TestBufferedJumpFiresOnceOnLanding(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)
	p.Y = k.ground - 10
	p.VelocityY = 100
	p.Jumping = true
	p.CoyoteTimer = 0

	k.requestJump(&p)
	jumps := 0
	for i := 0; i < 300; i++ {
		before := p.Y
		if k.update(&p, 0.01) {
			jumps++
			if before < k.ground-1 {
				t.Fatalf("jump fired in the air at y=%v", before)
			}
		}
	}
	if jumps != 1 {
		t.Errorf("buffered jump fired %d times, want 1", jumps)
	}
}

func TestLateRequestDropped(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)
	p.Y = k.ground - 200
	p.VelocityY = 0
	p.Jumping = true
	p.CoyoteTimer = 0

	k.requestJump(&p)
	jumps := 0
	for i := 0; i < 300; i++ {
		if k.update(&p, 0.01) {
			jumps++
		}
	}
	if jumps != 0 {
		t.Errorf("request made %v above ground should be dropped, got %d jumps", 200, jumps)
	}
}

func TestCoyoteJump(t *testing.T) {
	k, cfg := testKinematics()

	tests := []struct {
		name   string
		coyote float64
		want   bool
	}{
		{"inside window", 0.1, true},
		{"window spent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := k.spawn(cfg.Player)
			p.Y = k.ground - 150 // walked off an edge, no jump yet
			p.VelocityY = 0
			p.CoyoteTimer = tt.coyote

			k.requestJump(&p)
			if got := k.update(&p, 0.01); got != tt.want {
				t.Errorf("update() jumped = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoyoteWindowDecays(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)
	p.Y = k.ground - 150
	p.VelocityY = -2000 // keep rising so the player stays airborne

	for i := 0; i < 10; i++ {
		k.update(&p, 0.035)
	}
	if p.CoyoteTimer != 0 {
		t.Errorf("coyote timer = %v after 0.35s airborne, want 0", p.CoyoteTimer)
	}
}

func TestGravityAsymmetry(t *testing.T) {
	k, cfg := testKinematics()

	rising := k.spawn(cfg.Player)
	rising.Y = k.ground - 100
	rising.VelocityY = -500
	k.update(&rising, 0.01)
	if want := -500 + cfg.Physics.Gravity*0.01; !approxEqual(rising.VelocityY, want) {
		t.Errorf("rising vy = %v, want %v", rising.VelocityY, want)
	}

	falling := k.spawn(cfg.Player)
	falling.Y = k.ground - 100
	falling.VelocityY = 0
	k.update(&falling, 0.01)
	if want := cfg.Physics.FallGravity * 0.01; !approxEqual(falling.VelocityY, want) {
		t.Errorf("falling vy = %v, want %v", falling.VelocityY, want)
	}
}

func TestPlayerNeverBelowGround(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		if rng.Intn(10) == 0 {
			k.requestJump(&p)
		}
		k.update(&p, rng.Float64()*DefaultMaxStep)
		if p.Y > k.ground {
			t.Fatalf("step %d: y=%v below ground %v", i, p.Y, k.ground)
		}
		if p.CoyoteTimer < 0 || p.JumpBufferTimer < 0 || p.DashTimer < 0 {
			t.Fatalf("step %d: negative timer %+v", i, p)
		}
	}
}

func TestDashHitbox(t *testing.T) {
	k, cfg := testKinematics()
	p := k.spawn(cfg.Player)

	full := k.hitbox(p)
	if full.H != cfg.Player.Height || full.Bottom() != k.ground {
		t.Errorf("full hitbox = %+v", full)
	}
	if full.X != p.X+cfg.Player.HitboxInset || full.W != p.Width-2*cfg.Player.HitboxInset {
		t.Errorf("hitbox inset wrong: %+v", full)
	}

	k.dashStart(&p)
	k.update(&p, 0.01)
	dash := k.hitbox(p)
	if !approxEqual(dash.H, cfg.Player.Height*cfg.Physics.DashHeightRatio) {
		t.Errorf("dash height = %v", dash.H)
	}
	if !approxEqual(dash.Bottom(), p.Y) {
		t.Errorf("dash hitbox should stay on the feet: bottom=%v y=%v", dash.Bottom(), p.Y)
	}

	// Held dash keeps the timer full.
	for i := 0; i < 20; i++ {
		k.update(&p, 0.01)
	}
	if p.DashTimer != cfg.Physics.DashDuration {
		t.Errorf("held dash timer = %v, want %v", p.DashTimer, cfg.Physics.DashDuration)
	}

	// Released, it decays to zero and the hitbox returns to full height.
	k.dashEnd(&p)
	for i := 0; i < 11; i++ {
		k.update(&p, 0.01)
	}
	if p.Dashing() {
		t.Errorf("dash still active after release: timer=%v", p.DashTimer)
	}
	if k.hitbox(p).H != cfg.Player.Height {
		t.Error("hitbox did not revert to full height")
	}
}
