// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript mirrors console log entries into a SQLite database so
// a session's output can be read back after the scrollback has evicted it.
//
// Only log entries are stored. Submitted input lines are not: command
// history stays in memory for the life of the process.
package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/journal/internal/logbuf"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("transcript closed")

// DefaultRetention is how long Open keeps a session before pruning it.
const DefaultRetention = 30 * 24 * time.Hour

// pruneTimeout bounds the retention sweep run on open.
const pruneTimeout = 5 * time.Second

// =============================================================================
// TYPES
// =============================================================================

// Record is one stored log entry.
type Record struct {
	Session  string
	Seq      uint64
	Severity logbuf.Severity
	Text     string
	Time     time.Time
}

// Session summarizes one console session.
type Session struct {
	ID        string
	StartedAt time.Time
	Entries   int
}

// =============================================================================
// STORE
// =============================================================================

// Store is a SQLite backed transcript. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	pruned int64
}

// Open opens or creates the transcript database at path and prunes
// sessions older than DefaultRetention. ":memory:" gives a private
// in-memory store.
func Open(path string) (*Store, error) {
	return OpenWithRetention(path, DefaultRetention)
}

// OpenWithRetention is Open with an explicit retention window. Sessions that
// started more than retention ago are deleted before the store is returned.
// A retention of zero or less keeps everything.
func OpenWithRetention(path string, retention time.Duration) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=2000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store := &Store{db: db, path: path}
	if retention > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		n, err := store.Prune(ctx, time.Now().Add(-retention))
		cancel()
		if err != nil {
			db.Close()
			return nil, err
		}
		store.pruned = n
	}
	return store, nil
}

// Pruned returns how many sessions the retention sweep removed on open.
func (s *Store) Pruned() int64 {
	return s.pruned
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn returns the open database or ErrClosed. The read lock is held until
// the returned release func is called.
func (s *Store) conn() (*sql.DB, func(), error) {
	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return nil, nil, ErrClosed
	}
	return s.db, s.mu.RUnlock, nil
}

// StartSession registers a session. Starting an existing session is a no-op.
func (s *Store) StartSession(ctx context.Context, id string, at time.Time) error {
	db, release, err := s.conn()
	if err != nil {
		return err
	}
	defer release()

	_, err = db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sessions (id, started_at) VALUES (?, ?)",
		id, at.UnixNano())
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Record stores one entry for session. The session must have been started.
func (s *Store) Record(ctx context.Context, session string, e logbuf.Entry) error {
	db, release, err := s.conn()
	if err != nil {
		return err
	}
	defer release()

	_, err = db.ExecContext(ctx,
		`INSERT INTO entries (session_id, seq, severity, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session, int64(e.Seq), e.Severity.String(), e.Text, e.Time.UnixNano())
	if err != nil {
		return fmt.Errorf("record entry %d: %w", e.Seq, err)
	}
	return nil
}

// Recent returns up to limit of the newest entries of session, oldest
// first. A limit of zero or less returns every entry.
func (s *Store) Recent(ctx context.Context, session string, limit int) ([]Record, error) {
	db, release, err := s.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT seq, severity, text, created_at FROM (
		     SELECT seq, severity, text, created_at FROM entries
		     WHERE session_id = ? ORDER BY seq DESC LIMIT ?
		 ) ORDER BY seq ASC`,
		session, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			seq      int64
			severity string
			text     string
			nanos    int64
		)
		if err := rows.Scan(&seq, &severity, &text, &nanos); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		sev, err := logbuf.ParseSeverity(severity)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", seq, err)
		}
		records = append(records, Record{
			Session:  session,
			Seq:      uint64(seq),
			Severity: sev,
			Text:     text,
			Time:     time.Unix(0, nanos),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return records, nil
}

// Sessions lists sessions newest first with their entry counts.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	db, release, err := s.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx,
		`SELECT s.id, s.started_at, COUNT(e.id)
		 FROM sessions s LEFT JOIN entries e ON e.session_id = s.id
		 GROUP BY s.id ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess  Session
			nanos int64
		)
		if err := rows.Scan(&sess.ID, &nanos, &sess.Entries); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt = time.Unix(0, nanos)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Prune deletes sessions that started before cutoff, with their entries,
// and returns how many sessions were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	db, release, err := s.conn()
	if err != nil {
		return 0, err
	}
	defer release()

	res, err := db.ExecContext(ctx, "DELETE FROM sessions WHERE started_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
