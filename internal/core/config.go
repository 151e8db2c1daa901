package core

import "time"

// RuntimeConfig contains configuration passed to the session at initialization.
// The session uses this to size the viewport and to seed its RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed; 0 means time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// RunSummary describes one finished run for the run history.
type RunSummary struct {
	PlayerKey  string    // Primary identity key of the player
	Score      int       // Final score, floored
	Duration   float64   // Seconds of running time
	TopSpeed   float64   // World speed at the end of the run
	Difficulty string    // Preset the run was played on
	NewRecord  bool      // Whether the run set a new high score
	EndedAt    time.Time // Wall time the run ended
}
