package store

import (
	"fmt"
	"strings"
)

// DefaultMaxQueries is how many search queries are remembered.
const DefaultMaxQueries = 50

// AddQuery moves query to the front of the recent search queries. Blank
// queries are ignored.
func (d *DB) AddQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO recent_queries (query, used_at) VALUES (?, ?)
		ON CONFLICT(query) DO UPDATE SET used_at = excluded.used_at`,
		query, d.now().UnixNano()); err != nil {
		return fmt.Errorf("add recent query: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM recent_queries WHERE query NOT IN (
		SELECT query FROM recent_queries ORDER BY used_at DESC LIMIT ?)`, d.maxQueries); err != nil {
		return fmt.Errorf("prune recent queries: %w", err)
	}
	return tx.Commit()
}

// Suggestions returns remembered queries starting with prefix, ignoring
// case, most recent first. An empty prefix lists them all.
func (d *DB) Suggestions(prefix string) ([]string, error) {
	rows, err := d.db.Query("SELECT query FROM recent_queries ORDER BY used_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list recent queries: %w", err)
	}
	defer rows.Close()

	lower := strings.ToLower(prefix)
	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		if strings.HasPrefix(strings.ToLower(q), lower) {
			out = append(out, q)
		}
	}
	return out, rows.Err()
}

// ClearQueries forgets every search query.
func (d *DB) ClearQueries() error {
	if _, err := d.db.Exec("DELETE FROM recent_queries"); err != nil {
		return fmt.Errorf("clear recent queries: %w", err)
	}
	return nil
}
