// Package config provides YAML-based game configuration loading and
// the difficulty formulas that scale spawning and speed.
package config

// GameConfig contains all tunables for the runner.
type GameConfig struct {
	World     WorldConfig    `yaml:"world"`
	Player    PlayerConfig   `yaml:"player"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Speed     SpeedConfig    `yaml:"speed"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Powerups  PowerupConfig  `yaml:"powerups"`
	Weather   WeatherConfig  `yaml:"weather"`
	Audio     AudioConfig    `yaml:"audio"`
}

// WorldConfig defines the logical playfield in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"`  // Distance from the bottom edge to the ground line
	DayCycleRate float64 `yaml:"day_cycle_rate"` // Phase advance per second
}

// GroundLevel returns the y coordinate of the ground line.
func (w WorldConfig) GroundLevel() float64 {
	return w.Height - w.GroundOffset
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HitboxInset float64 `yaml:"hitbox_inset"`
}

// PhysicsConfig defines jump, dash and frame-step parameters.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`      // Applied while rising
	FallGravity     float64 `yaml:"fall_gravity"` // Applied while falling
	JumpForce       float64 `yaml:"jump_force"`
	CoyoteTime      float64 `yaml:"coyote_time"`
	JumpBuffer      float64 `yaml:"jump_buffer"`
	DashDuration    float64 `yaml:"dash_duration"`
	DashHeightRatio float64 `yaml:"dash_height_ratio"`
	MaxStep         float64 `yaml:"max_step"` // Upper bound of a single frame delta, seconds
}

// SpeedConfig defines world speed and score accrual.
type SpeedConfig struct {
	Base         float64 `yaml:"base"`
	Ramp         float64 `yaml:"ramp"`           // Speed gained per second of play
	ScorePerUnit float64 `yaml:"score_per_unit"` // Score per second per unit of speed
}

// ObstacleConfig defines obstacle spawning and motion.
type ObstacleConfig struct {
	InitialDelay         float64              `yaml:"initial_delay"`
	BaseInterval         float64              `yaml:"base_interval"`
	IntervalSpeedDivisor float64              `yaml:"interval_speed_divisor"`
	MaxIntervalReduction float64              `yaml:"max_interval_reduction"`
	IntervalJitter       float64              `yaml:"interval_jitter"`
	ScrollBonus          float64              `yaml:"scroll_bonus"` // Added to world speed before scaling
	ScrollScale          float64              `yaml:"scroll_scale"` // Units per second per unit of speed
	MaxSpeedOffset       float64              `yaml:"max_speed_offset"`
	HitboxInset          float64              `yaml:"hitbox_inset"`
	Ground               GroundObstacleConfig `yaml:"ground"`
	Aerial               AerialObstacleConfig `yaml:"aerial"`
}

// GroundObstacleConfig defines randomized ground obstacle dimensions.
type GroundObstacleConfig struct {
	MinWidth        float64 `yaml:"min_width"`
	WidthJitter     float64 `yaml:"width_jitter"`
	MinHeight       float64 `yaml:"min_height"`
	HeightJitter    float64 `yaml:"height_jitter"`
	CactusThreshold float64 `yaml:"cactus_threshold"` // Roll above this picks the cactus variant
}

// AerialObstacleConfig defines aerial obstacle eligibility and geometry.
type AerialObstacleConfig struct {
	Width                float64 `yaml:"width"`
	Height               float64 `yaml:"height"`
	Clearance            float64 `yaml:"clearance"` // Base offset above the ground line
	ScoreThreshold       float64 `yaml:"score_threshold"`
	SpeedThreshold       float64 `yaml:"speed_threshold"`
	BaseChance           float64 `yaml:"base_chance"`
	ChanceSpeedDivisor   float64 `yaml:"chance_speed_divisor"`
	MaxChance            float64 `yaml:"max_chance"`
	BaseCooldown         float64 `yaml:"base_cooldown"`
	MaxCooldownReduction float64 `yaml:"max_cooldown_reduction"`
	CooldownSpeedDivisor float64 `yaml:"cooldown_speed_divisor"`
	PteroThreshold       float64 `yaml:"ptero_threshold"`
}

// PowerupConfig defines pickup spawning, motion and effects.
type PowerupConfig struct {
	InitialDelay    float64      `yaml:"initial_delay"`
	MinInterval     float64      `yaml:"min_interval"`
	IntervalJitter  float64      `yaml:"interval_jitter"`
	Size            float64      `yaml:"size"`
	SpawnMargin     float64      `yaml:"spawn_margin"`      // Distance past the right edge
	SpawnLift       float64      `yaml:"spawn_lift"`        // Minimum height of the top edge above ground
	SpawnLiftJitter float64      `yaml:"spawn_lift_jitter"` // Extra random lift
	ScrollBonus     float64      `yaml:"scroll_bonus"`
	ScrollScale     float64      `yaml:"scroll_scale"`
	Shield          EffectConfig `yaml:"shield"`
	Boost           EffectConfig `yaml:"boost"`
	Slow            EffectConfig `yaml:"slow"`
}

// EffectConfig defines one power-up effect.
// Factor is the score multiplier for boost and the world slow factor for slow.
type EffectConfig struct {
	Duration float64 `yaml:"duration"`
	Factor   float64 `yaml:"factor"`
}

// WeatherConfig defines the weather cycle.
type WeatherConfig struct {
	InitialDelay   float64 `yaml:"initial_delay"`
	MinInterval    float64 `yaml:"min_interval"`
	IntervalJitter float64 `yaml:"interval_jitter"`
	CalmParticles  int     `yaml:"calm_particles"`
	StormParticles int     `yaml:"storm_particles"`
}

// AudioConfig defines the notification sounds.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
