package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astrarun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Quitting a run returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  astrarun menu
  astrarun menu --fps 30
  astrarun menu --db ./astrarun.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{withAudio: true})
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.runtimeConfig()
	identify := a.identify()

	for {
		best := 0
		if a.store != nil {
			if err := a.writer.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			if best, err = a.store.ReadHighScore(a.ident.Keys); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		menuResult, err := tui.RunMenu(tui.MenuInfo{HighScore: best, Difficulty: string(a.preset)}, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScoreboard:
			var source tui.RunSource
			if a.store != nil {
				source = a.store
			}
			goBack, sbErr := tui.RunScoreboard(source, a.playerKey(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			session := a.newSession(cfg)
			if err := tui.Run(session, tui.Options{Identify: identify, Logger: a.logger}); err != nil {
				return fmt.Errorf("error running game: %w", err)
			}
			// The lookup only needs to succeed once per process.
			identify = nil
			a.ident.Keys = session.Keys()

		default:
			return nil
		}
	}
}
