package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astrarun/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresMine  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best recorded runs.

Examples:
  astrarun scores
  astrarun scores --mine
  astrarun scores --limit 25
  astrarun scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (high scores are kept)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return fmt.Errorf("scores database %s is not available", flagDBPath)
	}
	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := a.store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	}

	var (
		runs     []storage.RunEntry
		statsKey string
	)
	if flagScoresMine {
		statsKey = a.playerKey()
		runs, err = a.store.PlayerRuns(statsKey, flagScoresLimit)
	} else {
		runs, err = a.store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Astrarun - Top Runs")
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'astrarun play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-7s  %s\n", "Rank", "Score", "Time", "Speed", "Mode", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-7s  %s\n", "----", "-----", "----", "-----", "----", "----")

	for i, r := range runs {
		mark := ""
		if r.NewRecord {
			mark = " *"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-6s  %-6.1f  %-7s  %s%s\n",
			i+1, r.Score, formatSeconds(r.Duration), r.TopSpeed, r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"), mark)
	}

	stats, err := a.store.Stats(statsKey)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Best: %d  Avg: %.0f  Played: %s\n",
			stats.RunsCount, stats.BestScore, stats.AvgScore, formatSeconds(stats.TotalTime))
	}
	if best, err := a.store.ReadHighScore(a.ident.Keys); err == nil && best > 0 {
		fmt.Fprintf(out, "Your best: %d\n", best)
	}
	return nil
}

// formatSeconds renders seconds as m:ss.
func formatSeconds(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
