package runner

import (
	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
)

// HitOutcome is the result of resolving obstacles for one step.
type HitOutcome int

const (
	HitNone     HitOutcome = iota
	HitAbsorbed            // A shield consumed one obstacle
	HitTerminal            // The run is over
)

// Resolver scrolls entities and tests them against the player hitbox.
type Resolver struct {
	difficulty *config.DifficultyManager
	inset      float64
}

// NewResolver creates a resolver using the obstacle hitbox inset from cfg.
func NewResolver(cfg config.GameConfig, diff *config.DifficultyManager) *Resolver {
	return &Resolver{difficulty: diff, inset: cfg.Obstacles.HitboxInset}
}

// ResolveObstacles scrolls obstacles left, prunes the ones off screen and
// checks each against the player. A shield absorbs the first hit and removes
// that obstacle. An unshielded hit returns immediately with the hit obstacle
// and every later one still in the list.
//
// The returned slice reuses the backing array of obstacles.
func (r *Resolver) ResolveObstacles(obstacles []Obstacle, delta, speed, slow float64, hitbox core.Rect, shielded bool) ([]Obstacle, HitOutcome) {
	outcome := HitNone
	kept := obstacles[:0]

	for i := range obstacles {
		o := obstacles[i]
		o.X -= r.difficulty.ObstacleShift(speed, slow, o.SpeedOffset, delta)
		if o.X+o.Width < 0 {
			continue
		}

		if hitbox.Intersects(o.Hitbox(r.inset)) {
			if shielded {
				shielded = false
				outcome = HitAbsorbed
				continue
			}
			kept = append(kept, o)
			kept = append(kept, obstacles[i+1:]...)
			return kept, HitTerminal
		}

		kept = append(kept, o)
	}

	return kept, outcome
}

// ResolvePickups scrolls pickups left, prunes the ones off screen and returns
// the kinds collected this step in list order.
//
// The returned slice reuses the backing array of pickups.
func (r *Resolver) ResolvePickups(pickups []Pickup, delta, speed, slow float64, hitbox core.Rect) ([]Pickup, []EffectKind) {
	var collected []EffectKind
	kept := pickups[:0]

	for _, p := range pickups {
		p.X -= r.difficulty.PowerupShift(speed, slow, delta)
		if p.X+p.Size < 0 {
			continue
		}
		if hitbox.Intersects(p.Bounds()) {
			collected = append(collected, p.Kind)
			continue
		}
		kept = append(kept, p)
	}

	return kept, collected
}
