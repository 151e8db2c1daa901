package runner

import "github.com/vovakirdan/astrarun/internal/core"

// Renderer consumes a snapshot after each step. It must not mutate the session.
type Renderer interface {
	Draw(snap Snapshot)
}

// HighScoreStore persists the best score under a player's identity keys.
// Implementations reconcile all keys to the maximum value ever written.
type HighScoreStore interface {
	ReadHighScore(keys []string) (int, error)
	WriteHighScore(keys []string, value int) error
}

// RunRecorder stores the history of finished runs.
type RunRecorder interface {
	RecordRun(run core.RunSummary) error
}

// Notifier receives fire-and-forget events. Notify must not block.
type Notifier interface {
	Notify(ev core.Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(core.Event) {}

// memoryStore is an in-process HighScoreStore used when no database is available.
type memoryStore struct {
	scores map[string]int
}

// NewMemoryStore returns a HighScoreStore that keeps scores for the process lifetime.
func NewMemoryStore() HighScoreStore {
	return &memoryStore{scores: make(map[string]int)}
}

func (m *memoryStore) ReadHighScore(keys []string) (int, error) {
	best := 0
	for _, k := range keys {
		best = max(best, m.scores[k])
	}
	return best, nil
}

func (m *memoryStore) WriteHighScore(keys []string, value int) error {
	best, _ := m.ReadHighScore(keys)
	best = max(best, value)
	for _, k := range keys {
		m.scores[k] = best
	}
	return nil
}
