package profile

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS devices (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS activity (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	last_seen TEXT NOT NULL
);`

// Store is the sqlite-backed Profile implementation.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profile path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) RecordActivity() error {
	_, err := s.db.Exec(
		`INSERT INTO activity(id, last_seen) VALUES(1, ?)
		 ON CONFLICT(id) DO UPDATE SET last_seen=excluded.last_seen`,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LastActivity reports when the account last saw activity, if ever.
func (s *Store) LastActivity() (time.Time, bool) {
	var raw string
	if err := s.db.QueryRow(`SELECT last_seen FROM activity WHERE id = 1`).Scan(&raw); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Store) DeviceName(deviceID string) (string, bool) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM devices WHERE id = ?`, deviceID).Scan(&name)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

func (s *Store) RememberDevice(deviceID, name string) error {
	if deviceID == "" {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO devices(id, name) VALUES(?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		deviceID, name,
	)
	return err
}

func (s *Store) Shutdown() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
