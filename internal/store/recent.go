package store

import "fmt"

// DefaultMaxRecent is how many recently opened files are remembered.
const DefaultMaxRecent = 10

// AddRecent moves path to the front of the recent files list, dropping the
// oldest entries beyond the limit.
func (d *DB) AddRecent(path string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO recent_files (path, opened_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at`,
		path, d.now().UnixNano()); err != nil {
		return fmt.Errorf("add recent file: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM recent_files WHERE path NOT IN (
		SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?)`, d.maxRecent); err != nil {
		return fmt.Errorf("prune recent files: %w", err)
	}
	return tx.Commit()
}

// Recent returns the remembered files, most recent first.
func (d *DB) Recent() ([]string, error) {
	rows, err := d.db.Query("SELECT path FROM recent_files ORDER BY opened_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
