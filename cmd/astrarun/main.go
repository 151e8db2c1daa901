// astrarun is an endless runner for the terminal.
//
// Usage:
//
//	astrarun                 - Play (same as astrarun play)
//	astrarun play            - Play a run directly
//	astrarun menu            - Start with the main menu
//	astrarun scores          - Show the run history
//	astrarun serve           - Start SSH server for remote play
//	astrarun config          - Print or install the default config
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed (0 = time based)
//	--db <path>            - Set database path (default: ~/.astrarun/astrarun.db)
//	--config <path>        - Use a custom config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagSentryDSN  string
	flagStatsView  string
	flagNoAudio    bool
	flagOffline    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astrarun",
	Short: "Astrarun - an endless runner in your terminal",
	Long: `Astrarun is a side-scrolling endless runner: jump and dash past
obstacles, grab power-ups and chase your high score.

Available commands:
  play     - Play a run directly (default)
  menu     - Main menu with scoreboard
  scores   - Print the run history
  serve    - Start SSH server for remote play
  config   - Print or install the default config

Examples:
  astrarun
  astrarun play --difficulty hard
  astrarun menu
  astrarun serve --ssh :2222
  astrarun scores --mine`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.astrarun/astrarun.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded when empty)")
	pf.StringVar(&flagSentryDSN, "sentry-dsn", os.Getenv("ASTRARUN_SENTRY_DSN"), "Report failures to Sentry")
	pf.StringVar(&flagStatsView, "statsview", "", "Serve runtime stats on this address (e.g. localhost:18066)")
	pf.BoolVar(&flagNoAudio, "no-audio", false, "Disable sound effects")
	pf.BoolVar(&flagOffline, "offline", false, "Skip the public IP lookup")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
