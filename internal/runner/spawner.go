package runner

import (
	"math/rand"

	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
)

// ObstacleClass separates obstacles that must be jumped from those that must be ducked.
type ObstacleClass int

const (
	ClassGround ObstacleClass = iota
	ClassAerial
)

// String returns the class name.
func (c ObstacleClass) String() string {
	if c == ClassAerial {
		return "aerial"
	}
	return "ground"
}

// Variant is the cosmetic look of an obstacle.
type Variant int

const (
	VariantCactus Variant = iota
	VariantChair
	VariantPtero
	VariantDrone
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantCactus:
		return "cactus"
	case VariantChair:
		return "chair"
	case VariantPtero:
		return "ptero"
	case VariantDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// Obstacle is a scrolling hazard. Y is its base line; it extends Height above it.
type Obstacle struct {
	X, Y        float64
	Width       float64
	Height      float64
	SpeedOffset float64 // Extra leftward shift per step
	Class       ObstacleClass
	Variant     Variant
}

// Bounds returns the full visual rectangle.
func (o Obstacle) Bounds() core.Rect {
	return core.NewRect(o.X, o.Y-o.Height, o.Width, o.Height)
}

// Hitbox returns the collision rectangle inset horizontally by inset.
func (o Obstacle) Hitbox(inset float64) core.Rect {
	return o.Bounds().Inset(inset)
}

// Pickup is a collectible power-up. Y is its top edge.
type Pickup struct {
	X, Y float64
	Size float64
	Kind EffectKind
}

// Bounds returns the pickup rectangle, which is also its hitbox.
func (p Pickup) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// Spawner owns the spawn countdowns and creates obstacles and pickups.
type Spawner struct {
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	cfg        config.GameConfig
	ground     float64

	obstacleTimer  float64
	powerupTimer   float64
	aerialCooldown float64
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, cfg config.GameConfig, diff *config.DifficultyManager) *Spawner {
	s := &Spawner{
		rng:        rng,
		difficulty: diff,
		cfg:        cfg,
		ground:     cfg.World.GroundLevel(),
	}
	s.Reset()
	return s
}

// Reset restores the initial countdowns.
func (s *Spawner) Reset() {
	s.obstacleTimer = s.cfg.Obstacles.InitialDelay
	s.powerupTimer = s.cfg.Powerups.InitialDelay
	s.aerialCooldown = 0
}

// Update runs the countdowns and appends anything spawned this step.
func (s *Spawner) Update(delta, score, speed float64, obstacles []Obstacle, pickups []Pickup) ([]Obstacle, []Pickup) {
	s.aerialCooldown = core.Decay(s.aerialCooldown, delta)

	s.obstacleTimer -= delta
	if s.obstacleTimer <= 0 {
		obstacles = append(obstacles, s.spawnObstacle(score, speed))
		s.obstacleTimer = s.difficulty.ObstacleInterval(speed, s.rng.Float64())
	}

	s.powerupTimer -= delta
	if s.powerupTimer <= 0 {
		pickups = append(pickups, s.spawnPickup())
		s.powerupTimer = s.difficulty.PowerupInterval(s.rng.Float64())
	}

	return obstacles, pickups
}

// spawnObstacle rolls the class, size and variant of the next obstacle.
func (s *Spawner) spawnObstacle(score, speed float64) Obstacle {
	oc := s.cfg.Obstacles
	aerial := false
	if s.difficulty.AerialAllowed(score, speed) && s.aerialCooldown <= 0 {
		aerial = s.rng.Float64() < s.difficulty.AerialChance(speed)
	}

	var o Obstacle
	if aerial {
		o = Obstacle{
			Y:       s.ground - oc.Aerial.Clearance,
			Width:   oc.Aerial.Width,
			Height:  oc.Aerial.Height,
			Class:   ClassAerial,
			Variant: VariantDrone,
		}
		if s.rng.Float64() > oc.Aerial.PteroThreshold {
			o.Variant = VariantPtero
		}
		s.aerialCooldown = s.difficulty.AerialCooldown(speed)
	} else {
		o = Obstacle{
			Y:       s.ground,
			Width:   oc.Ground.MinWidth + s.rng.Float64()*oc.Ground.WidthJitter,
			Height:  oc.Ground.MinHeight + s.rng.Float64()*oc.Ground.HeightJitter,
			Class:   ClassGround,
			Variant: VariantChair,
		}
		if s.rng.Float64() > oc.Ground.CactusThreshold {
			o.Variant = VariantCactus
		}
	}

	o.X = s.cfg.World.Width + o.Width
	o.SpeedOffset = s.difficulty.SpeedOffset(s.rng.Float64())
	return o
}

// spawnPickup places a pickup in the band above the ground.
func (s *Spawner) spawnPickup() Pickup {
	pc := s.cfg.Powerups
	return Pickup{
		X:    s.cfg.World.Width + pc.SpawnMargin,
		Y:    s.ground - pc.SpawnLift - s.rng.Float64()*pc.SpawnLiftJitter,
		Size: pc.Size,
		Kind: PickupKinds[s.rng.Intn(len(PickupKinds))],
	}
}

// AerialCooldown returns the time left before another aerial spawn is allowed.
func (s *Spawner) AerialCooldown() float64 {
	return s.aerialCooldown
}
