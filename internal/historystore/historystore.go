// Package historystore persists REPL input/output pairs to a local sqlite
// database; Recent reads them back. cmd/mathcli only records entries and
// has no command that replays them.
//
// Grounded on funvibe-funxy's pkg/cli auto-import of a uuid library for
// session identity; the sqlite persistence itself follows the teacher's
// preference for a pure-Go driver (modernc.org/sqlite) over a cgo one.
package historystore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a sqlite-backed history table.
type Store struct {
	db        *sql.DB
	SessionID uuid.UUID
}

// Open opens (creating if necessary) the history database at path and
// starts a new session.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history store schema: %w", err)
	}
	return &Store{db: db, SessionID: uuid.New()}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL,
	input      TEXT    NOT NULL,
	output     TEXT    NOT NULL,
	is_error   INTEGER NOT NULL,
	created_at TEXT    NOT NULL
)`

// Entry is one recorded REPL round trip.
type Entry struct {
	SessionID string
	Input     string
	Output    string
	IsError   bool
	CreatedAt time.Time
}

// Record appends one entry tagged with the store's current session.
func (s *Store) Record(input, output string, isError bool) error {
	_, err := s.db.Exec(
		`INSERT INTO history (session_id, input, output, is_error, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.SessionID.String(), input, output, isError, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns the most recent n entries across all sessions, oldest
// first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, input, output, is_error, created_at FROM history ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		var isError int
		if err := rows.Scan(&e.SessionID, &e.Input, &e.Output, &isError, &createdAt); err != nil {
			return nil, err
		}
		e.IsError = isError != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, e)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
