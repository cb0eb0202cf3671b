// Package store is the persistence collaborator: a SQLite-backed payload
// store holding the workspace JSON document as a single value. The core
// only ever sees the raw payload bytes and migrates whatever comes back.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

const payloadKey = "workspace"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs
// migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS payload (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Load returns the persisted workspace payload. Absence is not an error:
// a fresh database reports ok=false and the caller starts from defaults.
func (s *Store) Load() (data []byte, ok bool, err error) {
	var value string
	err = s.db.QueryRow(`SELECT value FROM payload WHERE key = ?`, payloadKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load payload: %w", err)
	}
	return []byte(value), true, nil
}

// Save writes the workspace payload, replacing any previous document.
func (s *Store) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO payload (key, value, updated_at)
		 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		payloadKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save payload: %w", err)
	}
	return nil
}

// Clear removes the persisted payload. Used by the full data reset.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM payload WHERE key = ?`, payloadKey)
	if err != nil {
		return fmt.Errorf("clear payload: %w", err)
	}
	return nil
}

// DefaultDBPath returns ~/.config/fokus/fokus.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "fokus", "fokus.db"), nil
}
