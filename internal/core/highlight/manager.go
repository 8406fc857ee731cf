// Package highlight lays search matches over a buffer as decorations.
package highlight

import (
	"github.com/SEPLEMBER/Oxy-test/internal/buffer"
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
)

// Buffer is the decoration surface.
type Buffer interface {
	AddDecoration(d buffer.Decoration)
	ClearDecorationsOf(kind buffer.DecorationKind)
}

// Manager keeps the match decorations of one buffer in sync with the find
// state. Other decorations are left alone.
type Manager struct {
	buf Buffer
}

// NewManager creates a highlight manager over buf.
func NewManager(buf Buffer) *Manager {
	return &Manager{buf: buf}
}

// Show replaces the match decorations with spans, marking spans[current]
// as the current match. current may be -1.
func (m *Manager) Show(spans []find.Span, current int) {
	m.Clear()
	for i, s := range spans {
		kind := buffer.DecorationMatch
		if i == current {
			kind = buffer.DecorationCurrentMatch
		}
		m.buf.AddDecoration(buffer.Decoration{Start: s.Start, End: s.End, Kind: kind})
	}
}

// Clear removes every match decoration.
func (m *Manager) Clear() {
	m.buf.ClearDecorationsOf(buffer.DecorationMatch)
	m.buf.ClearDecorationsOf(buffer.DecorationCurrentMatch)
}
