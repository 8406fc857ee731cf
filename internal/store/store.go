// Package store keeps user preferences, recently opened files and undo
// snapshots in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a key or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Bump when a schema change needs a migration step in migrate.
const schemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recent_files (
    path      TEXT PRIMARY KEY,
    opened_at INTEGER NOT NULL      -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_files(opened_at);

CREATE TABLE IF NOT EXISTS recent_queries (
    query   TEXT PRIMARY KEY,
    used_at INTEGER NOT NULL        -- UnixNano
);

CREATE TABLE IF NOT EXISTS history_snapshots (
    prefix       TEXT PRIMARY KEY,  -- usually the document path
    content_hash TEXT NOT NULL,
    max_history  INTEGER NOT NULL,
    position     INTEGER NOT NULL,
    saved_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS history_items (
    prefix TEXT NOT NULL REFERENCES history_snapshots(prefix) ON DELETE CASCADE,
    seq    INTEGER NOT NULL,
    start  INTEGER NOT NULL,
    before_text TEXT NOT NULL,
    after_text  TEXT NOT NULL,
    PRIMARY KEY (prefix, seq)
);
`

// DB is an open store. It is safe for concurrent use.
type DB struct {
	db         *sql.DB
	path       string
	now        func() time.Time
	maxRecent  int
	maxQueries int
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	logger.Debugf("Store: opened %s", path)
	return &DB{db: db, path: path, now: time.Now, maxRecent: DefaultMaxRecent, maxQueries: DefaultMaxQueries}, nil
}

// migrate brings an older database up to schemaVersion.
func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if current == schemaVersion {
		return nil
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema %d is newer than supported %d", current, schemaVersion)
	}

	logger.Infof("Store: migrating schema from version %d to %d", current, schemaVersion)
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}
