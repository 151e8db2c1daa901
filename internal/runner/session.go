// Package runner implements the real-time simulation: player kinematics,
// spawning, collision, power-ups, weather and the session state machine.
// It owns no timers; the host calls Step or Frame once per repaint.
package runner

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
	"github.com/vovakirdan/astrarun/internal/telemetry"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Status lines shown to the player.
const (
	msgIdle     = "Press Enter to start"
	msgStarted  = "Run started. Good luck!"
	msgPaused   = "Paused. Press P to resume."
	msgResumed  = "Back in the run. Keep the rhythm."
	msgAbsorbed = "Shield absorbed the hit, keep going!"
	msgGameOver = "Collision! Press Enter to retry."
	msgRecord   = "New record! Press Enter to go again."
)

// Options wires collaborators into a session. Nil fields get harmless defaults.
type Options struct {
	Store      HighScoreStore
	Runs       RunRecorder
	Notifier   Notifier
	Logger     *log.Logger
	Keys       []string // Identity keys for high score persistence
	Difficulty string   // Preset name recorded with each run
}

// Session is one player's simulation. It is not safe for concurrent use.
type Session struct {
	cfg     config.GameConfig
	runtime core.RuntimeConfig
	diff    *config.DifficultyManager
	rules   PowerupRules
	rng     *rand.Rand

	clock    *Clock
	kin      kinematics
	spawner  *Spawner
	resolver *Resolver
	weather  *Weather

	player    Player
	obstacles []Obstacle
	pickups   []Pickup
	effect    Effect

	phase     Phase
	score     float64
	speed     float64
	elapsed   float64
	dayCycle  float64
	highScore int
	newRecord bool
	message   string

	store      HighScoreStore
	runs       RunRecorder
	notifier   Notifier
	logger     *log.Logger
	keys       []string
	difficulty string
}

// NewSession creates an idle session and loads the stored high score.
func NewSession(cfg config.GameConfig, runtime core.RuntimeConfig, opts Options) *Session {
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	diff := config.NewDifficultyManager(cfg)

	s := &Session{
		cfg:      cfg,
		runtime:  runtime,
		diff:     diff,
		rules:    NewPowerupRules(cfg.Powerups),
		rng:      rng,
		clock:    NewClock(cfg.Physics.MaxStep),
		kin:      newKinematics(cfg),
		spawner:  NewSpawner(rng, cfg, diff),
		resolver: NewResolver(cfg, diff),
		weather:  NewWeather(rng, cfg),

		store:      opts.Store,
		runs:       opts.Runs,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		keys:       append([]string(nil), opts.Keys...),
		difficulty: opts.Difficulty,
	}
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.reset()
	s.message = msgIdle
	s.loadHighScore()
	return s
}

// reset restores every per-run value to its initial state.
func (s *Session) reset() {
	s.player = s.kin.spawn(s.cfg.Player)
	s.obstacles = s.obstacles[:0]
	s.pickups = s.pickups[:0]
	s.effect = Effect{}
	s.score = 0
	s.speed = s.diff.BaseSpeed()
	s.elapsed = 0
	s.dayCycle = 0
	s.newRecord = false
	s.spawner.Reset()
	s.weather.Reset()
	s.clock.Reset()
}

func (s *Session) loadHighScore() {
	if len(s.keys) == 0 {
		return
	}
	hs, err := s.store.ReadHighScore(s.keys)
	if err != nil {
		telemetry.Report(err, telemetry.Fields("op", "read_high_score", "keys", len(s.keys)))
		return
	}
	s.highScore = max(s.highScore, hs)
}

// Start resets the run and enters the running phase.
func (s *Session) Start() {
	s.reset()
	s.phase = PhaseRunning
	s.message = msgStarted
	s.logger.Info("run started", "speed", s.speed, "difficulty", s.difficulty)
}

// TogglePause switches between running and paused. It does nothing in other phases.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
		s.message = msgPaused
		s.logger.Debug("paused", "score", s.DisplayScore())
	case PhasePaused:
		s.phase = PhaseRunning
		s.clock.Resume()
		s.message = msgResumed
		s.logger.Debug("resumed", "score", s.DisplayScore())
	}
}

// RequestJump arms the jump buffer while running.
func (s *Session) RequestJump() {
	if s.phase != PhaseRunning {
		return
	}
	s.kin.requestJump(&s.player)
}

// DashStart begins or refreshes the dash while running.
func (s *Session) DashStart() {
	if s.phase != PhaseRunning {
		return
	}
	s.kin.dashStart(&s.player)
}

// DashEnd releases the dash in any phase.
func (s *Session) DashEnd() {
	s.kin.dashEnd(&s.player)
}

// Frame converts a host timestamp into a delta and steps the session.
// Outside the running phase it only returns a snapshot.
func (s *Session) Frame(now time.Time) Snapshot {
	if s.phase != PhaseRunning {
		return s.Snapshot()
	}
	return s.Step(s.clock.Tick(now))
}

// Step advances the simulation by delta seconds. Negative or invalid deltas
// count as zero. Outside the running phase nothing changes.
func (s *Session) Step(delta float64) Snapshot {
	if s.phase != PhaseRunning {
		return s.Snapshot()
	}
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		delta = 0
	}

	if s.kin.update(&s.player, delta) {
		s.notifier.Notify(core.EventJump)
	}

	s.obstacles, s.pickups = s.spawner.Update(delta, s.score, s.speed, s.obstacles, s.pickups)

	if s.resolve(delta) {
		s.end()
		return s.Snapshot()
	}

	prev := s.effect
	s.effect = s.effect.Tick(delta)
	if prev.Active() && !s.effect.Active() {
		s.logger.Debug("power-up expired", "kind", prev.Kind)
	}

	s.weather.Update(delta)

	s.score += s.diff.ScoreGain(delta, s.speed, s.rules.ScoreMultiplier(s.effect))
	s.speed = s.diff.Accelerate(s.speed, delta)
	s.dayCycle += delta * s.cfg.World.DayCycleRate
	s.elapsed += delta

	return s.Snapshot()
}

// resolve runs obstacle then pickup collisions and reports a terminal hit.
func (s *Session) resolve(delta float64) bool {
	hitbox := s.kin.hitbox(s.player)
	slow := s.rules.SlowFactor(s.effect)

	var outcome HitOutcome
	s.obstacles, outcome = s.resolver.ResolveObstacles(s.obstacles, delta, s.speed, slow, hitbox, s.effect.Shielded())
	switch outcome {
	case HitTerminal:
		return true
	case HitAbsorbed:
		s.effect, _ = s.effect.Absorb()
		s.message = msgAbsorbed
		s.logger.Debug("shield absorbed hit", "score", s.DisplayScore())
	}

	var collected []EffectKind
	s.pickups, collected = s.resolver.ResolvePickups(s.pickups, delta, s.speed, slow, hitbox)
	for _, kind := range collected {
		s.effect = s.rules.Activate(kind)
		s.message = s.rules.ActivationMessage(kind)
		s.logger.Debug("power-up collected", "kind", kind)
	}
	return false
}

// end performs the terminal transition.
func (s *Session) end() {
	s.phase = PhaseEnded
	s.effect = Effect{}
	s.message = msgGameOver
	s.notifier.Notify(core.EventSessionEnded)

	final := s.DisplayScore()
	if final > s.highScore {
		s.highScore = final
		s.newRecord = true
		s.message = msgRecord
		if err := s.store.WriteHighScore(s.keys, final); err != nil {
			telemetry.Report(err, telemetry.Fields("op", "write_high_score", "score", final))
		}
		s.notifier.Notify(core.EventNewHighScore)
	}

	if s.runs != nil {
		run := core.RunSummary{
			PlayerKey:  s.primaryKey(),
			Score:      final,
			Duration:   s.elapsed,
			TopSpeed:   s.speed,
			Difficulty: s.difficulty,
			NewRecord:  s.newRecord,
			EndedAt:    time.Now(),
		}
		if err := s.runs.RecordRun(run); err != nil {
			telemetry.Report(err, telemetry.Fields("op", "record_run", "score", final))
		}
	}

	s.logger.Info("run ended", "score", final, "high", s.highScore, "record", s.newRecord, "seconds", s.elapsed)
}

func (s *Session) primaryKey() string {
	if len(s.keys) == 0 {
		return ""
	}
	return s.keys[0]
}

// SetIdentityKeys replaces the identity keys used for persistence. The known
// high score is written under the new keys so a record set before they
// arrived reaches every key. It does not read the store.
func (s *Session) SetIdentityKeys(keys []string) {
	s.keys = append(s.keys[:0], keys...)
	if s.highScore <= 0 || len(s.keys) == 0 {
		return
	}
	if err := s.store.WriteHighScore(s.keys, s.highScore); err != nil {
		telemetry.Report(err, telemetry.Fields("op", "link_high_score", "keys", len(s.keys)))
	}
}

// MergeHighScore raises the known high score to value if it is larger.
// It is safe to call at any time and in any order.
func (s *Session) MergeHighScore(value int) {
	s.highScore = max(s.highScore, value)
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the unfloored score.
func (s *Session) Score() float64 {
	return s.score
}

// DisplayScore returns the floored score.
func (s *Session) DisplayScore() int {
	return int(math.Floor(s.score))
}

// HighScore returns the best known score for this player.
func (s *Session) HighScore() int {
	return s.highScore
}

// Speed returns the current world speed.
func (s *Session) Speed() float64 {
	return s.speed
}

// Keys returns a copy of the identity keys.
func (s *Session) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Config returns the game configuration the session runs with.
func (s *Session) Config() config.GameConfig {
	return s.cfg
}

// Runtime returns the runtime configuration.
func (s *Session) Runtime() core.RuntimeConfig {
	return s.runtime
}
