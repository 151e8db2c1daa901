package runner

import (
	"math"

	"github.com/vovakirdan/astrarun/internal/core"
)

// Snapshot is a read-only copy of the session state handed to renderers.
type Snapshot struct {
	Phase     Phase
	Score     float64
	HighScore int
	NewRecord bool
	Speed     float64
	Elapsed   float64 // Seconds of running time this run

	Effect          Effect
	SlowFactor      float64
	ScoreMultiplier float64
	Shielded        bool

	Player    Player
	Hitbox    core.Rect
	Obstacles []Obstacle
	Pickups   []Pickup

	Weather   WeatherKind
	Particles []Particle
	DayCycle  float64

	Message       string
	PowerupStatus string

	WorldWidth  float64
	WorldHeight float64
	GroundLevel float64
}

// DisplayScore returns the score floored for display.
func (s Snapshot) DisplayScore() int {
	return int(math.Floor(s.Score))
}

// Daylight returns the sky brightness in [0, 1] for the current day cycle.
func (s Snapshot) Daylight() float64 {
	return (math.Sin(s.DayCycle) + 1) / 2
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:     s.phase,
		Score:     s.score,
		HighScore: s.highScore,
		NewRecord: s.newRecord,
		Speed:     s.speed,
		Elapsed:   s.elapsed,

		Effect:          s.effect,
		SlowFactor:      s.rules.SlowFactor(s.effect),
		ScoreMultiplier: s.rules.ScoreMultiplier(s.effect),
		Shielded:        s.effect.Shielded(),

		Player:    s.player,
		Hitbox:    s.kin.hitbox(s.player),
		Obstacles: append([]Obstacle(nil), s.obstacles...),
		Pickups:   append([]Pickup(nil), s.pickups...),

		Weather:   s.weather.Kind(),
		Particles: append([]Particle(nil), s.weather.Particles()...),
		DayCycle:  s.dayCycle,

		Message:       s.message,
		PowerupStatus: s.rules.StatusText(s.effect),

		WorldWidth:  s.cfg.World.Width,
		WorldHeight: s.cfg.World.Height,
		GroundLevel: s.kin.ground,
	}
}
