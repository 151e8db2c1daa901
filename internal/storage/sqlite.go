// Package storage provides SQLite-based persistence for high scores, run
// history and the local player profile.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/astrarun/internal/core"
)

// Profile keys.
const (
	profilePlayerID = "player_id"
	profilePublicIP = "public_ip"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single recorded run.
type RunEntry struct {
	ID         int64
	PlayerKey  string
	Score      int
	Duration   float64
	TopSpeed   float64
	Difficulty string
	NewRecord  bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single connection serializes writers from the async worker and the UI.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			identity_key TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_key TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			top_speed REAL NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			new_record INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player_key, score DESC);

		CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

// placeholders returns "?, ?, ..." and the matching args for keys.
func placeholders(keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", "), args
}

func maxScore(q queryer, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	in, args := placeholders(keys)
	var score sql.NullInt64
	err := q.QueryRow(
		"SELECT MAX(score) FROM high_scores WHERE identity_key IN ("+in+")",
		args...,
	).Scan(&score)
	if err != nil {
		return 0, err
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ReadHighScore returns the best score stored under any of keys.
// Returns 0 if none of the keys is known.
func (s *Store) ReadHighScore(keys []string) (int, error) {
	score, err := maxScore(s.db, keys)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// WriteHighScore records value under keys. See Reconcile.
func (s *Store) WriteHighScore(keys []string, value int) error {
	_, err := s.Reconcile(keys, value)
	return err
}

// Reconcile makes every key hold the maximum of value and the scores already
// stored under any of the keys, and returns that maximum. Stored scores never
// decrease, and the result is independent of the order keys arrive in.
func (s *Store) Reconcile(keys []string, value int) (int, error) {
	if len(keys) == 0 {
		return value, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	best, err := maxScore(tx, keys)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	best = max(best, value)

	for _, k := range keys {
		_, err := tx.Exec(
			`INSERT INTO high_scores (identity_key, score, updated_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(identity_key) DO UPDATE SET
			     score = MAX(high_scores.score, excluded.score),
			     updated_at = CURRENT_TIMESTAMP`,
			k, best,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot write high score for %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return best, nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run core.RunSummary) (int64, error) {
	newRecord := 0
	if run.NewRecord {
		newRecord = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (player_key, score, duration_secs, top_speed, difficulty, new_record)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.PlayerKey, run.Score, run.Duration, run.TopSpeed, run.Difficulty, newRecord,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRun saves a run, discarding its ID.
func (s *Store) RecordRun(run core.RunSummary) error {
	_, err := s.SaveRun(run)
	return err
}

const runColumns = `id, player_key, score, duration_secs, top_speed, difficulty, new_record, created_at`

// TopRuns retrieves the top N runs across all players.
// Results are ordered by score descending.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the top N runs of one player.
func (s *Store) PlayerRuns(playerKey string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player_key = ? ORDER BY score DESC, id ASC LIMIT ?`,
		playerKey, limit,
	)
}

// RecentRuns retrieves the most recent runs across all players.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var newRecord int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PlayerKey, &e.Score, &e.Duration, &e.TopSpeed, &e.Difficulty, &newRecord, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.NewRecord = newRecord != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes the run history. High scores are kept.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over recorded runs.
type RunStats struct {
	RunsCount  int
	BestScore  int
	AvgScore   float64
	TotalTime  float64
	LastPlayed time.Time
}

// Stats aggregates the runs of playerKey, or of everyone when playerKey is empty.
func (s *Store) Stats(playerKey string) (*RunStats, error) {
	stats := &RunStats{}

	where, args := "", []any{}
	if playerKey != "" {
		where, args = " WHERE player_key = ?", []any{playerKey}
	}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(duration_secs), 0), MAX(created_at)
		 FROM runs`+where,
		args...,
	).Scan(&stats.RunsCount, &stats.BestScore, &stats.AvgScore, &stats.TotalTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ProfileValue returns a profile entry. The second result is false when unset.
func (s *Store) ProfileValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM profile WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read profile %s: %w", key, err)
	}
	return value, true, nil
}

// SetProfileValue stores a profile entry.
func (s *Store) SetProfileValue(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO profile (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write profile %s: %w", key, err)
	}
	return nil
}

// PlayerID returns the stable local player ID, creating it on first use.
func (s *Store) PlayerID() (string, error) {
	id, ok, err := s.ProfileValue(profilePlayerID)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := s.SetProfileValue(profilePlayerID, id); err != nil {
		return "", err
	}
	return id, nil
}

// CachedIP returns the public IP saved by a previous lookup, if any.
func (s *Store) CachedIP() (string, bool, error) {
	return s.ProfileValue(profilePublicIP)
}

// SetCachedIP saves the public IP so later sessions skip the lookup.
func (s *Store) SetCachedIP(ip string) error {
	return s.SetProfileValue(profilePublicIP, ip)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
