// Package storage provides SQLite-based persistence for show sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Session origins.
const (
	OriginTerminal = "terminal"
	OriginWindow   = "window"
	OriginSSH      = "ssh"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished run of a show.
type Session struct {
	ID            int64
	ShowID        string
	Origin        string // terminal, window or ssh
	Launched      int
	Exploded      int
	PeakParticles int
	Frames        int
	Duration      int // Duration in seconds
	CreatedAt     time.Time
}

// ShowStats contains aggregated statistics for a show.
type ShowStats struct {
	ShowID        string
	Sessions      int
	Launched      int64
	Exploded      int64
	PeakParticles int
	TotalSeconds  int64
	LastPlayed    time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			show_id TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT 'terminal',
			launched INTEGER NOT NULL DEFAULT 0,
			exploded INTEGER NOT NULL DEFAULT 0,
			peak_particles INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_show_id ON sessions(show_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.Origin == "" {
		sess.Origin = OriginTerminal
	}
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (show_id, origin, launched, exploded, peak_particles, frames, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ShowID, sess.Origin, sess.Launched, sess.Exploded,
		sess.PeakParticles, sess.Frames, sess.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Record saves a finished run described by its final show state.
// Runs that never simulated a frame are skipped and return ID 0.
func (s *Store) Record(showID, origin string, st core.ShowState, elapsed time.Duration) (int64, error) {
	if st.Frames == 0 {
		return 0, nil
	}
	return s.SaveSession(Session{
		ShowID:        showID,
		Origin:        origin,
		Launched:      st.Launched,
		Exploded:      st.Exploded,
		PeakParticles: st.Peak,
		Frames:        st.Frames,
		Duration:      int(elapsed.Seconds()),
	})
}

// RecentSessions retrieves the most recent sessions, newest first.
// An empty showID returns sessions of every show.
func (s *Store) RecentSessions(showID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, show_id, origin, launched, exploded, peak_particles, frames, duration_secs, created_at
		 FROM sessions
		 WHERE ? = '' OR show_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		showID, showID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(
			&sess.ID,
			&sess.ShowID,
			&sess.Origin,
			&sess.Launched,
			&sess.Exploded,
			&sess.PeakParticles,
			&sess.Frames,
			&sess.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes all sessions for the given show.
func (s *Store) ClearSessions(showID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE show_id = ?", showID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GetShowStats retrieves aggregated statistics for a specific show.
func (s *Store) GetShowStats(showID string) (*ShowStats, error) {
	stats := &ShowStats{ShowID: showID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(launched), 0), COALESCE(SUM(exploded), 0),
		        COALESCE(MAX(peak_particles), 0), COALESCE(SUM(duration_secs), 0)
		 FROM sessions WHERE show_id = ?`,
		showID,
	).Scan(&stats.Sessions, &stats.Launched, &stats.Exploded, &stats.PeakParticles, &stats.TotalSeconds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get show stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE show_id = ? ORDER BY created_at DESC LIMIT 1`,
		showID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllShowStats retrieves statistics for every show that has been played.
func (s *Store) GetAllShowStats() (map[string]*ShowStats, error) {
	rows, err := s.db.Query(
		`SELECT show_id, COUNT(*), SUM(launched), SUM(exploded), MAX(peak_particles),
		        SUM(duration_secs), MAX(created_at)
		 FROM sessions
		 GROUP BY show_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all show stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ShowStats)
	for rows.Next() {
		var st ShowStats
		var lastPlayed any
		if err := rows.Scan(&st.ShowID, &st.Sessions, &st.Launched, &st.Exploded,
			&st.PeakParticles, &st.TotalSeconds, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.ShowID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
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
