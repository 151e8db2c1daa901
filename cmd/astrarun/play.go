package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astrarun/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run right away.

Controls:
  Space/Up/Z  - Jump (buffered, with coyote time)
  Down/S      - Dash (hold)
  P/Esc       - Pause
  Enter/R     - Start / restart after game over
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower start, gentle speed ramp
  normal - Default tuning
  hard   - Faster start, steep speed ramp
  fixed  - Speed never increases

Examples:
  astrarun play
  astrarun play --difficulty easy
  astrarun play --config ./my-astrarun.yaml
  astrarun play --seed 42 --no-audio`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{withAudio: true})
	if err != nil {
		return err
	}
	defer a.close()

	session := a.newSession(a.runtimeConfig())
	a.logger.Info("play", "difficulty", a.preset, "keys", len(a.ident.Keys))

	if err := tui.Run(session, tui.Options{
		Identify: a.identify(),
		Logger:   a.logger,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
