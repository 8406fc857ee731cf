package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/core/history"
)

// SaveSnapshot stores s under prefix, replacing any earlier snapshot.
func (d *DB) SaveSnapshot(prefix string, s history.Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history_items WHERE prefix = ?", prefix); err != nil {
		return fmt.Errorf("save snapshot %q: %w", prefix, err)
	}
	if _, err := tx.Exec(`INSERT INTO history_snapshots (prefix, content_hash, max_history, position, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(prefix) DO UPDATE SET
			content_hash = excluded.content_hash,
			max_history = excluded.max_history,
			position = excluded.position,
			saved_at = excluded.saved_at`,
		prefix, s.ContentHash, s.MaxHistorySize, s.Position, d.now().UnixNano()); err != nil {
		return fmt.Errorf("save snapshot %q: %w", prefix, err)
	}

	stmt, err := tx.Prepare("INSERT INTO history_items (prefix, seq, start, before_text, after_text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, it := range s.Items {
		if _, err := stmt.Exec(prefix, i, it.Start, it.Before, it.After); err != nil {
			return fmt.Errorf("save snapshot %q item %d: %w", prefix, i, err)
		}
	}
	return tx.Commit()
}

// LoadSnapshot returns the snapshot stored under prefix, or ErrNotFound.
// Whether it still matches the document is for history.Manager.Restore
// to decide.
func (d *DB) LoadSnapshot(prefix string) (history.Snapshot, error) {
	var s history.Snapshot
	err := d.db.QueryRow(`SELECT content_hash, max_history, position
		FROM history_snapshots WHERE prefix = ?`, prefix).
		Scan(&s.ContentHash, &s.MaxHistorySize, &s.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("snapshot %q: %w", prefix, ErrNotFound)
	}
	if err != nil {
		return s, fmt.Errorf("load snapshot %q: %w", prefix, err)
	}

	rows, err := d.db.Query(`SELECT start, before_text, after_text FROM history_items
		WHERE prefix = ? ORDER BY seq`, prefix)
	if err != nil {
		return s, fmt.Errorf("load snapshot %q: %w", prefix, err)
	}
	defer rows.Close()
	for rows.Next() {
		var it history.EditItem
		if err := rows.Scan(&it.Start, &it.Before, &it.After); err != nil {
			return s, err
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

// DeleteSnapshot removes the snapshot stored under prefix, if any.
func (d *DB) DeleteSnapshot(prefix string) error {
	if _, err := d.db.Exec("DELETE FROM history_snapshots WHERE prefix = ?", prefix); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", prefix, err)
	}
	return nil
}
