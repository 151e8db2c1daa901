package runner

import (
	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
)

// Player holds the runner's kinematic state. Y is the feet line and grows downward.
type Player struct {
	X, Y      float64
	Width     float64
	Height    float64
	VelocityY float64

	DashTimer       float64
	DashHeld        bool
	Jumping         bool
	CoyoteTimer     float64
	JumpBufferTimer float64
}

// kinematics applies the jump and dash rules to a Player.
type kinematics struct {
	physics config.PhysicsConfig
	ground  float64
	inset   float64
}

func newKinematics(cfg config.GameConfig) kinematics {
	return kinematics{
		physics: cfg.Physics,
		ground:  cfg.World.GroundLevel(),
		inset:   cfg.Player.HitboxInset,
	}
}

// spawn returns a player standing on the ground with a full coyote window.
func (k kinematics) spawn(pc config.PlayerConfig) Player {
	return Player{
		X:           pc.X,
		Y:           k.ground,
		Width:       pc.Width,
		Height:      pc.Height,
		CoyoteTimer: k.physics.CoyoteTime,
	}
}

// onGround reports ground contact with a one unit tolerance.
func (k kinematics) onGround(p *Player) bool {
	return p.Y >= k.ground-1
}

// requestJump arms the jump buffer.
func (k kinematics) requestJump(p *Player) {
	p.JumpBufferTimer = k.physics.JumpBuffer
}

// dashStart holds the dash and refreshes its timer.
func (k kinematics) dashStart(p *Player) {
	p.DashHeld = true
	p.DashTimer = k.physics.DashDuration
}

// dashEnd releases the dash; the timer then decays.
func (k kinematics) dashEnd(p *Player) {
	p.DashHeld = false
}

// update advances the player by delta seconds and reports whether a jump fired.
func (k kinematics) update(p *Player, delta float64) bool {
	ph := k.physics

	if k.onGround(p) {
		p.CoyoteTimer = ph.CoyoteTime
		p.Jumping = false
	} else {
		p.CoyoteTimer = core.Decay(p.CoyoteTimer, delta)
	}

	p.JumpBufferTimer = core.Decay(p.JumpBufferTimer, delta)

	jumped := false
	if p.JumpBufferTimer > 0 && p.CoyoteTimer > 0 {
		p.VelocityY = -ph.JumpForce
		p.Jumping = true
		p.CoyoteTimer = 0
		p.JumpBufferTimer = 0
		jumped = true
	}

	gravity := ph.FallGravity
	if p.VelocityY < 0 {
		gravity = ph.Gravity
	}
	p.VelocityY += gravity * delta
	p.Y += p.VelocityY * delta

	if p.Y >= k.ground {
		p.Y = k.ground
		p.VelocityY = 0
		p.Jumping = false
		p.CoyoteTimer = ph.CoyoteTime
	}

	if p.DashHeld {
		p.DashTimer = ph.DashDuration
	} else {
		p.DashTimer = core.Decay(p.DashTimer, delta)
	}

	return jumped
}

// hitbox returns the collision rectangle. While dashing it shrinks to the
// configured ratio of the height, anchored at the feet.
func (k kinematics) hitbox(p Player) core.Rect {
	h := p.Height
	if p.DashTimer > 0 {
		h *= k.physics.DashHeightRatio
	}
	return core.NewRect(p.X, p.Y-h, p.Width, h).Inset(k.inset)
}

// Dashing reports whether the reduced hitbox is in effect.
func (p Player) Dashing() bool {
	return p.DashTimer > 0
}

// Airborne reports whether the player has left the ground line.
func (p Player) Airborne(ground float64) bool {
	return p.Y < ground-1
}
