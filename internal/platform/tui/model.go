package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astrarun/internal/core"
	"github.com/vovakirdan/astrarun/internal/runner"
	"github.com/vovakirdan/astrarun/internal/telemetry"
)

// DashRelease is how long the dash key may stay quiet before the hold ends.
// Terminals report key repeats, not key releases.
const DashRelease = 150 * time.Millisecond

// identifyTimeout bounds the background identity lookup.
const identifyTimeout = 8 * time.Second

// Identified is the result of resolving the player's identity in the background.
type Identified struct {
	Keys []string // Identity keys to persist under
	Best int      // High score reconciled across Keys
}

// IdentifyFunc resolves identity keys off the UI goroutine.
type IdentifyFunc func(ctx context.Context) (Identified, error)

// identityMsg carries a finished identity lookup back into Update.
type identityMsg struct {
	result Identified
	err    error
}

// Options configures a Model.
type Options struct {
	Identify      IdentifyFunc // Optional background identity lookup
	Logger        *log.Logger
	ScreenshotDir string // Defaults to ~/.astrarun/screenshots
}

// Model is the Bubble Tea model that hosts one runner session.
type Model struct {
	session   *runner.Session
	renderer  *runner.ScreenRenderer
	keyMapper *KeyMapper
	config    core.RuntimeConfig
	opts      Options
	logger    *log.Logger

	gen      int // Scheduling generation; bumped whenever the tick chain restarts or stops
	ticking  bool
	dashAt   time.Time
	dashing  bool
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *runner.Session, opts Options) Model {
	cfg := session.Runtime()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		session:   session,
		renderer:  runner.NewScreenRenderer(cfg.ScreenW, cfg.ScreenH),
		keyMapper: NewKeyMapper(),
		config:    cfg,
		opts:      opts,
		logger:    logger,
	}
}

// Init starts the identity lookup. Ticks begin when a run starts.
func (m Model) Init() tea.Cmd {
	if m.opts.Identify == nil {
		return nil
	}
	identify := m.opts.Identify
	return func() tea.Msg {
		defer telemetry.Recover("identity")
		ctx, cancel := context.WithTimeout(context.Background(), identifyTimeout)
		defer cancel()
		result, err := identify(ctx)
		return identityMsg{result: result, err: err}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case identityMsg:
		return m.handleIdentity(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.stopTicking()
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		m.session.RequestJump()

	case core.ActionDashStart:
		m.session.DashStart()
		if m.session.Phase() == runner.PhaseRunning {
			m.dashAt = time.Now()
			m.dashing = true
		}

	case core.ActionPause:
		m.session.TogglePause()
		m.releaseDash()
		return m.reschedule()

	case core.ActionStart:
		switch m.session.Phase() {
		case runner.PhaseIdle, runner.PhaseEnded:
			m.session.Start()
			m.releaseDash()
			return m.reschedule()
		}
	}

	return m, nil
}

// reschedule starts a fresh tick chain when the session is running and
// invalidates any chain already in flight.
func (m Model) reschedule() (tea.Model, tea.Cmd) {
	m.gen++
	m.ticking = m.session.Phase() == runner.PhaseRunning
	if !m.ticking {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

func (m *Model) stopTicking() {
	m.gen++
	m.ticking = false
}

func (m *Model) releaseDash() {
	if m.dashing {
		m.session.DashEnd()
		m.dashing = false
	}
}

// handleResize processes window resize events.
// The world is resolution independent, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.renderer.Screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick steps the session once and schedules the next frame while running.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.ticking {
		return m, nil
	}

	if m.dashing && msg.Time.Sub(m.dashAt) > DashRelease {
		m.releaseDash()
	}

	snap := m.session.Frame(msg.Time)
	if snap.Phase != runner.PhaseRunning {
		m.stopTicking()
		m.releaseDash()
		return m, nil
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleIdentity merges the resolved identity into the session.
func (m Model) handleIdentity(msg identityMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		telemetry.Report(msg.err, telemetry.Fields("op", "identify"))
	}
	m.session.MergeHighScore(msg.result.Best)
	if len(msg.result.Keys) > 0 {
		m.session.SetIdentityKeys(msg.result.Keys)
	}
	m.logger.Debug("identity resolved", "keys", len(msg.result.Keys), "best", m.session.HighScore())
	return m, nil
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.session.Snapshot())

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, ".astrarun", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		telemetry.Report(err, telemetry.Fields("op", "screenshot", "dir", dir))
		return
	}

	filename := fmt.Sprintf("astrarun_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.renderer.Screen.String()), 0o600); err != nil {
		telemetry.Report(err, telemetry.Fields("op", "screenshot", "path", path))
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current snapshot to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.session.Snapshot())
	return RenderScreen(m.renderer.Screen)
}

// Session returns the hosted session.
func (m Model) Session() *runner.Session {
	return m.session
}

// Run starts the Bubble Tea program for session on the local terminal.
func Run(session *runner.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(session, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
