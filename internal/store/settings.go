package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Well-known setting keys.
const (
	KeyEncoding   = "encoding"
	KeyLineEnding = "line_ending"
)

// Get returns the value stored under key, or ErrNotFound.
func (d *DB) Get(key string) (string, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(key, value string) error {
	_, err := d.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DB) Delete(key string) error {
	if _, err := d.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// All returns every stored setting.
func (d *DB) All() (map[string]string, error) {
	rows, err := d.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	all := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		all[k] = v
	}
	return all, rows.Err()
}

// Settings answers document settings from the database, falling back to
// another source (normally the config file) for keys that are not stored.
type Settings struct {
	db       *DB
	fallback fileio.Settings
}

var _ fileio.Settings = (*Settings)(nil)

// Settings returns a settings view backed by d.
func (d *DB) Settings(fallback fileio.Settings) *Settings {
	return &Settings{db: d, fallback: fallback}
}

func (s *Settings) FileEncoding() string {
	if v, err := s.db.Get(KeyEncoding); err == nil && v != "" {
		return v
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warnf("Store: %v", err)
	}
	if s.fallback != nil {
		return s.fallback.FileEncoding()
	}
	return fileio.DefaultEncoding
}

func (s *Settings) LineEndingTarget() lineending.Target {
	if v, err := s.db.Get(KeyLineEnding); err == nil {
		if t, err := lineending.ParseTarget(v); err == nil {
			return t
		}
		logger.Warnf("Store: ignoring stored line ending %q", v)
	}
	if s.fallback != nil {
		return s.fallback.LineEndingTarget()
	}
	return lineending.Unspecified
}
