package config

import "math"

// DifficultyManager calculates speed-dependent game parameters.
// Callers pass uniform samples in [0, 1) so the manager stays deterministic.
type DifficultyManager struct {
	speed     SpeedConfig
	obstacles ObstacleConfig
	powerups  PowerupConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg GameConfig) *DifficultyManager {
	return &DifficultyManager{
		speed:     cfg.Speed,
		obstacles: cfg.Obstacles,
		powerups:  cfg.Powerups,
	}
}

// BaseSpeed returns the world speed at the start of a session.
func (d *DifficultyManager) BaseSpeed() float64 {
	return d.speed.Base
}

// Accelerate returns the world speed after delta seconds of play.
func (d *DifficultyManager) Accelerate(speed, delta float64) float64 {
	return speed + delta*d.speed.Ramp
}

// ScoreGain returns the score earned over delta seconds.
func (d *DifficultyManager) ScoreGain(delta, speed, multiplier float64) float64 {
	return delta * d.speed.ScorePerUnit * speed * multiplier
}

// ObstacleInterval returns the delay until the next obstacle spawn.
func (d *DifficultyManager) ObstacleInterval(speed, u float64) float64 {
	o := d.obstacles
	return o.BaseInterval - math.Min(o.MaxIntervalReduction, speed/o.IntervalSpeedDivisor) + u*o.IntervalJitter
}

// AerialAllowed reports whether aerial obstacles may appear yet.
func (d *DifficultyManager) AerialAllowed(score, speed float64) bool {
	a := d.obstacles.Aerial
	return score > a.ScoreThreshold || speed > a.SpeedThreshold
}

// AerialChance returns the probability that an eligible spawn is aerial.
func (d *DifficultyManager) AerialChance(speed float64) float64 {
	a := d.obstacles.Aerial
	return math.Min(a.BaseChance+speed/a.ChanceSpeedDivisor, a.MaxChance)
}

// AerialCooldown returns the minimum gap between two aerial spawns.
func (d *DifficultyManager) AerialCooldown(speed float64) float64 {
	a := d.obstacles.Aerial
	return a.BaseCooldown - math.Min(a.MaxCooldownReduction, speed/a.CooldownSpeedDivisor)
}

// SpeedOffset returns the per-obstacle extra speed for a sample.
func (d *DifficultyManager) SpeedOffset(u float64) float64 {
	return u * d.obstacles.MaxSpeedOffset
}

// ObstacleShift returns how far an obstacle moves left over delta seconds.
func (d *DifficultyManager) ObstacleShift(speed, slow, offset, delta float64) float64 {
	o := d.obstacles
	return (speed+o.ScrollBonus)*slow*o.ScrollScale*delta + offset
}

// PowerupShift returns how far a pickup moves left over delta seconds.
func (d *DifficultyManager) PowerupShift(speed, slow, delta float64) float64 {
	p := d.powerups
	return (speed + p.ScrollBonus) * slow * p.ScrollScale * delta
}

// PowerupInterval returns the delay until the next pickup spawn.
func (d *DifficultyManager) PowerupInterval(u float64) float64 {
	return d.powerups.MinInterval + u*d.powerups.IntervalJitter
}
