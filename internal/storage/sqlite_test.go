package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/astrarun/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestReadHighScoreUnknownKeys(t *testing.T) {
	store := openTestStore(t)

	for _, keys := range [][]string{nil, {"id:nobody"}, {"id:a", "ip:b"}} {
		high, err := store.ReadHighScore(keys)
		if err != nil {
			t.Fatalf("ReadHighScore(%v) failed: %v", keys, err)
		}
		if high != 0 {
			t.Errorf("ReadHighScore(%v) = %d, want 0", keys, high)
		}
	}
}

func TestReconcileTakesMaximumAcrossKeys(t *testing.T) {
	store := openTestStore(t)

	if err := store.WriteHighScore([]string{"ip:home"}, 900); err != nil {
		t.Fatalf("WriteHighScore() failed: %v", err)
	}

	best, err := store.Reconcile([]string{"id:laptop", "ip:home"}, 400)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if best != 900 {
		t.Errorf("Reconcile() = %d, want 900", best)
	}

	// The new key inherits the best score of its siblings.
	high, _ := store.ReadHighScore([]string{"id:laptop"})
	if high != 900 {
		t.Errorf("id:laptop = %d, want 900", high)
	}
}

func TestHighScoreNeverDecreases(t *testing.T) {
	store := openTestStore(t)
	keys := []string{"id:p"}

	for _, v := range []int{300, 100, 250, 0} {
		if err := store.WriteHighScore(keys, v); err != nil {
			t.Fatalf("WriteHighScore(%d) failed: %v", v, err)
		}
	}

	high, _ := store.ReadHighScore(keys)
	if high != 300 {
		t.Errorf("high score = %d, want 300", high)
	}
}

func TestReconcileOrderIndependent(t *testing.T) {
	writes := []struct {
		keys  []string
		value int
	}{
		{[]string{"id:a"}, 120},
		{[]string{"ip:x"}, 480},
		{[]string{"id:a", "ip:x"}, 60},
	}

	forward := openTestStore(t)
	for _, w := range writes {
		forward.WriteHighScore(w.keys, w.value)
	}
	backward := openTestStore(t)
	for i := len(writes) - 1; i >= 0; i-- {
		backward.WriteHighScore(writes[i].keys, writes[i].value)
	}

	for _, key := range []string{"id:a", "ip:x"} {
		f, _ := forward.ReadHighScore([]string{key})
		b, _ := backward.ReadHighScore([]string{key})
		if f != b || f != 480 {
			t.Errorf("%s: forward=%d backward=%d, want 480", key, f, b)
		}
	}
}

func TestSaveAndListRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []core.RunSummary{
		{PlayerKey: "id:a", Score: 100, Duration: 12.5, TopSpeed: 8.1, Difficulty: "normal"},
		{PlayerKey: "id:a", Score: 350, Duration: 40, TopSpeed: 13.2, Difficulty: "normal", NewRecord: true},
		{PlayerKey: "id:b", Score: 200, Duration: 20, TopSpeed: 9.8, Difficulty: "hard"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 350 || top[1].Score != 200 || top[2].Score != 100 {
		t.Errorf("runs not sorted by score: %v", top)
	}
	if !top[0].NewRecord || top[0].Difficulty != "normal" || top[0].Duration != 40 {
		t.Errorf("run fields not round-tripped: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	mine, err := store.PlayerRuns("id:a", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(mine) != 2 || mine[0].Score != 350 {
		t.Errorf("PlayerRuns(id:a) = %v", mine)
	}

	recent, _ := store.RecentRuns(1)
	if len(recent) != 1 || recent[0].PlayerKey != "id:b" {
		t.Errorf("RecentRuns(1) = %v", recent)
	}
}

func TestTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.RecordRun(core.RunSummary{PlayerKey: "id:p", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("runs not in expected order: %v", runs)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.RecordRun(core.RunSummary{PlayerKey: "id:a", Score: 100, Duration: 10})
	store.RecordRun(core.RunSummary{PlayerKey: "id:a", Score: 300, Duration: 30})
	store.RecordRun(core.RunSummary{PlayerKey: "id:b", Score: 50, Duration: 5})

	tests := []struct {
		key   string
		count int
		best  int
		avg   float64
		total float64
	}{
		{"", 3, 300, 150, 45},
		{"id:a", 2, 300, 200, 40},
		{"id:c", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		st, err := store.Stats(tt.key)
		if err != nil {
			t.Fatalf("Stats(%q) failed: %v", tt.key, err)
		}
		if st.RunsCount != tt.count || st.BestScore != tt.best || st.AvgScore != tt.avg || st.TotalTime != tt.total {
			t.Errorf("Stats(%q) = %+v", tt.key, st)
		}
	}
}

func TestClearRunsKeepsHighScores(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(core.RunSummary{PlayerKey: "id:a", Score: 100})
	store.WriteHighScore([]string{"id:a"}, 100)

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("expected 0 runs after clear, got %d", len(runs))
	}
	high, _ := store.ReadHighScore([]string{"id:a"})
	if high != 100 {
		t.Errorf("high score cleared with runs: %d", high)
	}
}

func TestPlayerIDStable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	first, err := store.PlayerID()
	if err != nil {
		t.Fatalf("PlayerID() failed: %v", err)
	}
	if first == "" {
		t.Fatal("PlayerID() returned empty ID")
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	second, _ := store.PlayerID()
	if second != first {
		t.Errorf("PlayerID() changed across opens: %s -> %s", first, second)
	}
}

func TestCachedIP(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.CachedIP(); err != nil || ok {
		t.Fatalf("CachedIP() on empty store = ok:%v err:%v", ok, err)
	}

	store.SetCachedIP("203.0.113.7")
	store.SetCachedIP("203.0.113.8")

	ip, ok, err := store.CachedIP()
	if err != nil || !ok || ip != "203.0.113.8" {
		t.Errorf("CachedIP() = %q, %v, %v", ip, ok, err)
	}
}
