package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "astrarun.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.astrarun/configs/astrarun.yaml -> ./configs/astrarun.yaml -> embedded default
//
// Files are decoded on top of DefaultGameConfig, so a partial file only
// overrides the keys it names.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case c.World.GroundOffset < 0 || c.World.GroundOffset >= c.World.Height:
		return fmt.Errorf("ground offset %g out of range", c.World.GroundOffset)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size must be positive")
	case c.Player.HitboxInset*2 >= c.Player.Width:
		return fmt.Errorf("player hitbox inset %g too large", c.Player.HitboxInset)
	case c.Physics.Gravity <= 0 || c.Physics.FallGravity <= 0:
		return fmt.Errorf("gravity must be positive")
	case c.Physics.MaxStep <= 0:
		return fmt.Errorf("max step must be positive")
	case c.Physics.DashHeightRatio <= 0 || c.Physics.DashHeightRatio > 1:
		return fmt.Errorf("dash height ratio %g out of range", c.Physics.DashHeightRatio)
	case c.Speed.Base <= 0:
		return fmt.Errorf("base speed must be positive")
	case c.Speed.Ramp < 0:
		return fmt.Errorf("speed ramp must not be negative")
	case c.Powerups.Slow.Factor <= 0 || c.Powerups.Slow.Factor > 1:
		return fmt.Errorf("slow factor %g out of range", c.Powerups.Slow.Factor)
	case c.Powerups.Boost.Factor < 1:
		return fmt.Errorf("boost factor %g below 1", c.Powerups.Boost.Factor)
	case c.Weather.CalmParticles < 0 || c.Weather.StormParticles < 0:
		return fmt.Errorf("particle counts must not be negative")
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = 5.2
		cfg.Speed.Ramp = 0.12
	case DifficultyHard:
		cfg.Speed.Base = 7.5
		cfg.Speed.Ramp = 0.25
	case DifficultyFixed:
		cfg.Speed.Ramp = 0
	}
}

// userConfigPath returns the path to user config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".astrarun", "configs", filename)
}

// UserConfigDir returns the user config directory path.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".astrarun", "configs")
}
