// Package audit keeps a local access trail for credential operations.
// Entries record names and actions only, never secret values.
package audit

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const createSchema = `
CREATE TABLE IF NOT EXISTS access_log (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	action     TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_access_log_created ON access_log(created_at);
CREATE INDEX IF NOT EXISTS idx_access_log_name ON access_log(name);
`

// Entry is one row of the access log.
type Entry struct {
	ID        string
	Name      string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// Log is a SQLite-backed access log.
type Log struct {
	conn *sql.DB
}

// Open opens or creates the audit database at the given path.
func Open(path string) (*Log, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(createSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}

	return &Log{conn: conn}, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.conn.Close()
}

// Append writes an audit entry.
func (l *Log) Append(entry Entry) error {
	if entry.ID == "" {
		b := make([]byte, 16)
		rand.Read(b)
		entry.ID = hex.EncodeToString(b)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := l.conn.Exec(
		`INSERT INTO access_log (id, name, action, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Name, entry.Action, entry.Detail,
		entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Record implements the store's audit sink. Append failures are dropped;
// auditing must not block credential operations.
func (l *Log) Record(name, action string) {
	l.Append(Entry{Name: name, Action: action})
}

// Recent retrieves the latest entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	rows, err := l.conn.Query(
		"SELECT id, name, action, detail, created_at FROM access_log ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Action, &e.Detail, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
