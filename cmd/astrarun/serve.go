package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astrarun/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the astrarun SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session. Players are identified by
their public key, user name and remote host; all users share the
server's leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.astrarun/host_key

Examples:
  astrarun serve                           # Listen on :23234 with auto-generated key
  astrarun serve --ssh :2222               # Listen on port 2222
  astrarun serve --host-key ./my_host_key  # Use specific host key
  astrarun serve --db ./astrarun.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Sound would play on the server, and logs belong on stderr.
	a, err := newApp(appOptions{logTo: os.Stderr})
	if err != nil {
		return err
	}
	defer a.close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Difficulty:  string(a.preset),
	}
	deps := tui.SSHDeps{Game: a.game}
	if a.store != nil {
		deps.Store = a.writer
		deps.Runs = a.writer
		deps.Reconciler = a.store
	}

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting astrarun SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
