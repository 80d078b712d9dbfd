package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
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
	CREATE TABLE IF NOT EXISTS users (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		username    TEXT NOT NULL UNIQUE,
		email       TEXT NOT NULL UNIQUE,
		role        TEXT NOT NULL DEFAULT 'user',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id       INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		assigned_user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		title            TEXT NOT NULL,
		estimated_time   INTEGER NOT NULL DEFAULT 0 CHECK (estimated_time >= 0),
		start_date       TEXT,
		end_date         TEXT,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK (status IN ('pending','in_progress','code_review','done')),
		overtime         INTEGER NOT NULL DEFAULT 0,
		saved_time       INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project  ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_user_id);

	CREATE TABLE IF NOT EXISTS timers (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id     INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		duration    INTEGER,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_timers_task  ON timers(task_id);
	CREATE INDEX IF NOT EXISTS idx_timers_start ON timers(start_time);

	-- At most one running timer per task. Enforced here so that two
	-- concurrent starts cannot both succeed; the loser fails the insert.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_timers_running
		ON timers(task_id) WHERE end_time IS NULL;
	`
	_, err := s.db.Exec(ddl)
	return err
}
