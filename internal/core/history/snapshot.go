package history

import (
	"crypto/sha256"
	"encoding/hex"
)

// Snapshot is the persisted form of a history. It is only valid for the
// exact text it was taken from.
type Snapshot struct {
	ContentHash    string
	MaxHistorySize int
	Position       int
	Items          []EditItem
}

// ContentHash identifies a document's text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Snapshot captures the history for the current text.
func (m *Manager) Snapshot(text string) Snapshot {
	return Snapshot{
		ContentHash:    ContentHash(text),
		MaxHistorySize: m.maxSize,
		Position:       m.position,
		Items:          m.Items(),
	}
}

// Restore replaces the history with s when s was taken from text. A stale or
// malformed snapshot leaves the history empty and returns false.
func (m *Manager) Restore(s Snapshot, text string) bool {
	m.Clear()
	if s.ContentHash != ContentHash(text) {
		return false
	}
	if s.Position < 0 || s.Position > len(s.Items) {
		return false
	}
	m.items = append(m.items, s.Items...)
	m.position = s.Position
	m.maxSize = s.MaxHistorySize
	m.trim()
	return true
}
