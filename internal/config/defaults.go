package config

import (
	_ "embed"
)

//go:embed defaults/astrarun.yaml
var defaultYAML []byte

// DefaultGameConfig returns the built-in configuration.
// It mirrors defaults/astrarun.yaml and is used when the embedded file fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:        960,
			Height:       360,
			GroundOffset: 62,
			DayCycleRate: 0.35,
		},
		Player: PlayerConfig{
			X:           110,
			Width:       52,
			Height:      62,
			HitboxInset: 6,
		},
		Physics: PhysicsConfig{
			Gravity:         2050,
			FallGravity:     3100,
			JumpForce:       800,
			CoyoteTime:      0.30,
			JumpBuffer:      0.14,
			DashDuration:    0.10,
			DashHeightRatio: 0.55,
			MaxStep:         0.035,
		},
		Speed: SpeedConfig{
			Base:         6.2,
			Ramp:         0.18,
			ScorePerUnit: 100,
		},
		Obstacles: ObstacleConfig{
			InitialDelay:         0.8,
			BaseInterval:         0.9,
			IntervalSpeedDivisor: 60,
			MaxIntervalReduction: 0.5,
			IntervalJitter:       0.6,
			ScrollBonus:          1,
			ScrollScale:          60,
			MaxSpeedOffset:       1.2,
			HitboxInset:          4,
			Ground: GroundObstacleConfig{
				MinWidth:        46,
				WidthJitter:     22,
				MinHeight:       60,
				HeightJitter:    28,
				CactusThreshold: 0.35,
			},
			Aerial: AerialObstacleConfig{
				Width:                72,
				Height:               42,
				Clearance:            44,
				ScoreThreshold:       450,
				SpeedThreshold:       8.5,
				BaseChance:           0.12,
				ChanceSpeedDivisor:   45,
				MaxChance:            0.5,
				BaseCooldown:         1.8,
				MaxCooldownReduction: 0.8,
				CooldownSpeedDivisor: 14,
				PteroThreshold:       0.55,
			},
		},
		Powerups: PowerupConfig{
			InitialDelay:    6,
			MinInterval:     9,
			IntervalJitter:  6,
			Size:            36,
			SpawnMargin:     40,
			SpawnLift:       80,
			SpawnLiftJitter: 40,
			ScrollBonus:     0.5,
			ScrollScale:     55,
			Shield:          EffectConfig{Duration: 8},
			Boost:           EffectConfig{Duration: 6, Factor: 1.8},
			Slow:            EffectConfig{Duration: 5, Factor: 0.62},
		},
		Weather: WeatherConfig{
			InitialDelay:   10,
			MinInterval:    12,
			IntervalJitter: 10,
			CalmParticles:  12,
			StormParticles: 60,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.4,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
