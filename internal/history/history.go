// Package history persists find-unused batch runs to a SQLite database under
// the project's .sua directory.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"sua/internal/logging"
)

const defaultListLimit = 20

// Run is one recorded batch analysis.
type Run struct {
	RunID          string
	CreatedAt      time.Time
	ElapsedSeconds float64
	Analyzed       int
	Unused         int
	Threshold      int
	Group          string
}

// Store wraps the history database connection.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the history database at .sua/history.db.
func Open(projectRoot string, logger *logging.Logger) (*Store, error) {
	suaDir := filepath.Join(projectRoot, ".sua")
	if err := os.MkdirAll(suaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .sua directory: %w", err)
	}

	dbPath := filepath.Join(suaDir, "history.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initializeSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			elapsed_seconds REAL NOT NULL,
			analyzed INTEGER NOT NULL,
			unused INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			group_filter TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record inserts one batch run. A zero CreatedAt is filled with the current
// time. Timestamps are stored in UTC so the TEXT column sorts chronologically
// regardless of the offset a run was recorded under.
func (s *Store) Record(run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.conn.Exec(`
		INSERT INTO runs (
			run_id, created_at, elapsed_seconds, analyzed, unused, threshold, group_filter
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.ElapsedSeconds,
		run.Analyzed,
		run.Unused,
		run.Threshold,
		run.Group,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("Recorded batch run", map[string]interface{}{
		"run_id":   run.RunID,
		"analyzed": run.Analyzed,
		"unused":   run.Unused,
	})
	return nil
}

// List returns the most recent runs, newest first. A non-positive limit
// falls back to the default of 20.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.conn.Query(`
		SELECT run_id, created_at, elapsed_seconds, analyzed, unused, threshold, group_filter
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.RunID,
			&createdAt,
			&run.ElapsedSeconds,
			&run.Analyzed,
			&run.Unused,
			&run.Threshold,
			&run.Group,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
