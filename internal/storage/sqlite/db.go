// ABOUTME: SQLite database connection, schema migrations, and lifecycle
// ABOUTME: Uses modernc.org/sqlite via sqlx for pure-Go SQLite support
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	conn *sqlx.DB
	path string
}

// DefaultDBPath returns the default database file path under the XDG data home.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "wingman", "wingman.db")
}

// Open opens or creates a SQLite database at the given path and applies any
// pending migrations.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*DB, error) {
	conn, err := sqlx.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	db := &DB{conn: conn, path: ":memory:"}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	username      TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	title         TEXT NOT NULL,
	task_date     TEXT NOT NULL,
	task_time     TEXT NOT NULL DEFAULT '',
	completed     INTEGER NOT NULL DEFAULT 0,
	failed        INTEGER NOT NULL DEFAULT 0,
	urgency_level INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON tasks(user_id, task_date);

CREATE TABLE IF NOT EXISTS calendar_events (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	event_date  TEXT NOT NULL,
	event_time  TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_events_user_date ON calendar_events(user_id, event_date);

CREATE TABLE IF NOT EXISTS diary_entries (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	entry_date TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL,
	mood       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_diary_user_date ON diary_entries(user_id, entry_date);

CREATE TABLE IF NOT EXISTS chat_history (
	id        TEXT PRIMARY KEY,
	user_id   TEXT NOT NULL,
	message   TEXT NOT NULL,
	is_ai     INTEGER NOT NULL DEFAULT 0,
	timestamp TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_user_ts ON chat_history(user_id, timestamp);
`,
	},
}

// migrate checks the current schema version and applies any outstanding
// migrations in order.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)",
	); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	if err := db.conn.Get(&current,
		"SELECT COALESCE(MAX(version), 0) FROM schema_version",
	); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := db.conn.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if _, err := db.conn.Exec(
			"INSERT INTO schema_version (version) VALUES (?)", m.version,
		); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}

	return nil
}
