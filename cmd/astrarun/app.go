package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/astrarun/internal/audio"
	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
	"github.com/vovakirdan/astrarun/internal/identity"
	"github.com/vovakirdan/astrarun/internal/platform/tui"
	"github.com/vovakirdan/astrarun/internal/runner"
	"github.com/vovakirdan/astrarun/internal/storage"
	"github.com/vovakirdan/astrarun/internal/telemetry"
)

// app holds the collaborators shared by every command.
type app struct {
	game    config.GameConfig
	preset  config.DifficultyPreset
	logger  *log.Logger
	logFile *os.File

	store  *storage.Store       // nil when the database could not be opened
	writer *storage.AsyncWriter // nil when store is nil
	audio  *audio.Notifier
	stats  *telemetry.StatsView

	ident identity.Identity
}

// appOptions selects which collaborators a command needs.
type appOptions struct {
	logTo     io.Writer // Overrides --log-file
	withAudio bool
}

func newApp(opts appOptions) (*app, error) {
	a := &app{}

	if err := a.setupLogging(opts.logTo); err != nil {
		return nil, err
	}
	telemetry.SetLogger(a.logger)
	if err := telemetry.Init(flagSentryDSN, "astrarun@"+version); err != nil {
		a.logger.Warn("sentry disabled", "err", err)
	}
	if flagStatsView != "" {
		a.stats = telemetry.StartStatsView(flagStatsView)
		a.logger.Info("statsview started", "addr", flagStatsView)
	}

	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		a.close()
		return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	a.preset = preset

	game, err := config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}
	config.ApplyPreset(&game, preset)
	a.game = game

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the game still works
		telemetry.Report(err, telemetry.Fields("op", "open_db", "path", flagDBPath))
	} else {
		a.store = store
		a.writer = storage.NewAsyncWriter(store, 0)
		a.ident = a.localIdentity()
	}

	if opts.withAudio {
		audioCfg := game.Audio
		if flagNoAudio {
			audioCfg.Enabled = false
		}
		a.audio = audio.New(audioCfg, a.logger)
	}

	return a, nil
}

func (a *app) setupLogging(w io.Writer) error {
	if w == nil {
		w = io.Discard
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("cannot open log file: %w", err)
			}
			a.logFile = f
			w = f
		}
	}
	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "astrarun",
		Level:           log.DebugLevel,
	})
	return nil
}

func (a *app) resolver() *identity.Resolver {
	return &identity.Resolver{Profile: a.store, Offline: flagOffline}
}

// localIdentity returns the identity known without the network.
func (a *app) localIdentity() identity.Identity {
	ident, err := a.resolver().Local()
	if err != nil {
		telemetry.Report(err, telemetry.Fields("op", "local_identity"))
	}
	return ident
}

// identify resolves the public IP in the background and links the best
// score across every key of the player.
func (a *app) identify() tui.IdentifyFunc {
	if a.store == nil {
		return nil
	}
	resolver := a.resolver()
	store := a.store
	return func(ctx context.Context) (tui.Identified, error) {
		ident, err := resolver.Resolve(ctx)
		if len(ident.Keys) == 0 {
			return tui.Identified{}, err
		}
		best, recErr := store.Reconcile(ident.Keys, 0)
		if err == nil {
			err = recErr
		}
		return tui.Identified{Keys: ident.Keys, Best: best}, err
	}
}

func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func (a *app) newSession(rt core.RuntimeConfig) *runner.Session {
	opts := runner.Options{
		Logger:     a.logger,
		Keys:       a.ident.Keys,
		Difficulty: string(a.preset),
	}
	if a.writer != nil {
		opts.Store = a.writer
		opts.Runs = a.writer
	}
	if a.audio != nil {
		opts.Notifier = a.audio
	}
	return runner.NewSession(a.game, rt, opts)
}

func (a *app) playerKey() string {
	if len(a.ident.Keys) == 0 {
		return ""
	}
	return a.ident.Keys[0]
}

// close releases collaborators in reverse order of setup.
func (a *app) close() {
	if a.audio != nil {
		a.audio.Close()
	}
	if a.writer != nil {
		a.writer.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	a.stats.Stop()
	telemetry.Flush(2 * time.Second)
	if a.logFile != nil {
		a.logFile.Close()
	}
}
