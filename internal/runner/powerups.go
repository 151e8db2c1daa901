package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/astrarun/internal/config"
)

// EffectKind identifies a power-up category. EffectNone means no effect is active.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectShield
	EffectBoost
	EffectSlow
)

// PickupKinds lists the kinds a pickup can carry, in spawn-roll order.
var PickupKinds = [...]EffectKind{EffectShield, EffectBoost, EffectSlow}

// String returns the lowercase kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectShield:
		return "shield"
	case EffectBoost:
		return "boost"
	case EffectSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// Label returns the display name of the kind.
func (k EffectKind) Label() string {
	switch k {
	case EffectShield:
		return "Shield"
	case EffectBoost:
		return "Hyper Boost"
	case EffectSlow:
		return "Time Slow"
	default:
		return ""
	}
}

// Glyph returns the character drawn inside a pickup.
func (k EffectKind) Glyph() rune {
	switch k {
	case EffectShield:
		return 'S'
	case EffectBoost:
		return 'B'
	case EffectSlow:
		return 'T'
	default:
		return '?'
	}
}

// expiryEpsilon absorbs float drift from summing many small frame deltas.
const expiryEpsilon = 1e-9

// Effect is the single active power-up. The zero value is inactive.
type Effect struct {
	Kind      EffectKind
	Remaining float64
}

// Active reports whether any effect is in force.
func (e Effect) Active() bool {
	return e.Kind != EffectNone
}

// Shielded reports whether the next obstacle hit will be absorbed.
func (e Effect) Shielded() bool {
	return e.Kind == EffectShield
}

// Tick counts the effect down. It returns the inactive effect once time runs out.
func (e Effect) Tick(delta float64) Effect {
	if !e.Active() {
		return Effect{}
	}
	e.Remaining -= delta
	if e.Remaining <= expiryEpsilon {
		return Effect{}
	}
	return e
}

// Absorb consumes a shield. The second result is false when nothing was absorbed.
func (e Effect) Absorb() (Effect, bool) {
	if !e.Shielded() {
		return e, false
	}
	return Effect{}, true
}

// PowerupRules maps effects to their durations and side effects.
type PowerupRules struct {
	cfg config.PowerupConfig
}

// NewPowerupRules creates rules from the power-up configuration.
func NewPowerupRules(cfg config.PowerupConfig) PowerupRules {
	return PowerupRules{cfg: cfg}
}

// Duration returns the full duration of a kind.
func (r PowerupRules) Duration(kind EffectKind) float64 {
	switch kind {
	case EffectShield:
		return r.cfg.Shield.Duration
	case EffectBoost:
		return r.cfg.Boost.Duration
	case EffectSlow:
		return r.cfg.Slow.Duration
	default:
		return 0
	}
}

// Activate returns the effect that replaces whatever is active now.
func (r PowerupRules) Activate(kind EffectKind) Effect {
	d := r.Duration(kind)
	if kind == EffectNone || d <= 0 {
		return Effect{}
	}
	return Effect{Kind: kind, Remaining: d}
}

// ScoreMultiplier returns the score rate factor for an effect.
func (r PowerupRules) ScoreMultiplier(e Effect) float64 {
	if e.Kind == EffectBoost {
		return r.cfg.Boost.Factor
	}
	return 1
}

// SlowFactor returns the world motion factor for an effect.
func (r PowerupRules) SlowFactor(e Effect) float64 {
	if e.Kind == EffectSlow {
		return r.cfg.Slow.Factor
	}
	return 1
}

// ActivationMessage returns the status line shown on pickup.
func (r PowerupRules) ActivationMessage(kind EffectKind) string {
	switch kind {
	case EffectShield:
		return "Shield up! The next obstacle can't stop you."
	case EffectBoost:
		return fmt.Sprintf("Hyper boost! Score x%g.", r.cfg.Boost.Factor)
	case EffectSlow:
		return "Time slowed. Plan your jumps."
	default:
		return ""
	}
}

// StatusText describes the active effect with whole seconds left, rounded up.
func (r PowerupRules) StatusText(e Effect) string {
	if !e.Active() {
		return "No power-up active"
	}
	return fmt.Sprintf("%s: %ds left", e.Kind.Label(), int(math.Ceil(e.Remaining)))
}
