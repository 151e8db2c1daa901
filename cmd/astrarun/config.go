package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/astrarun/internal/config"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective config or install the default one",
	Long: `Print the game config after applying --config and --difficulty.

With --init, the default config is written to ~/.astrarun/configs/astrarun.yaml
(existing files are left alone) so it can be edited.

Examples:
  astrarun config
  astrarun config --difficulty hard
  astrarun config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to the user config directory")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagConfigInit {
		dir := config.UserConfigDir()
		if dir == "" {
			return fmt.Errorf("cannot determine home directory")
		}
		path := filepath.Join(dir, config.FileName)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Config already exists: %s\n", path)
			return nil
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			return fmt.Errorf("cannot write config: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
		return nil
	}

	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	game, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&game, preset)

	data, err := yaml.Marshal(game)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Fprintf(out, "# difficulty: %s\n", preset)
	_, err = out.Write(data)
	return err
}
