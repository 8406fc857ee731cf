package history

import (
	"errors"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/buffer"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// DefaultMaxHistory bounds a history when the configuration gives no size.
const DefaultMaxHistory = 100

// Unbounded disables trimming.
const Unbounded = -1

// ErrOutOfRange means a recorded item no longer fits the buffer it is
// applied to.
var ErrOutOfRange = buffer.ErrOutOfRange

// Buffer is the live text surface undo and redo are applied to.
type Buffer interface {
	Replace(start, end int, text string) error
	SetCaret(pos int)
	ClearDecorations()
}

// Manager records replacements made to a Buffer and replays them backwards
// and forwards. It assumes a single writer and is not safe for concurrent
// use.
type Manager struct {
	buf      Buffer
	items    []EditItem
	position int // items[:position] are applied
	maxSize  int // negative means unbounded
	applying bool
}

// NewManager creates a history for buf holding at most maxSize items.
// A negative maxSize keeps everything.
func NewManager(buf Buffer, maxSize int) *Manager {
	return &Manager{
		buf:     buf,
		items:   make([]EditItem, 0, 16),
		maxSize: maxSize,
	}
}

// OnBufferChanged records a buffer mutation. It lets a Manager subscribe
// directly to a buffer.Text.
func (m *Manager) OnBufferChanged(d buffer.Delta) {
	m.RecordChange(d.Start, d.Before, d.After)
}

// RecordChange appends a replacement made by the user. Changes caused by
// Undo or Redo themselves are ignored.
func (m *Manager) RecordChange(start int, before, after string) {
	if m.applying {
		return
	}

	// New edit after undo discards the redo branch
	if m.position < len(m.items) {
		logger.Debugf("History: Discarding %d redo item(s)", len(m.items)-m.position)
		m.items = m.items[:m.position]
	}

	m.items = append(m.items, EditItem{Start: start, Before: before, After: after})
	m.position++
	m.trim()
}

// trim drops the oldest items beyond maxSize.
func (m *Manager) trim() {
	if m.maxSize < 0 {
		return
	}
	for len(m.items) > m.maxSize {
		m.items = m.items[1:]
		m.position--
	}
	if m.position < 0 {
		m.position = 0
	}
}

// Undo reverts the most recent applied item. It returns false when there is
// nothing to undo.
func (m *Manager) Undo() (bool, error) {
	if !m.CanUndo() {
		return false, nil
	}

	item := m.items[m.position-1]
	if err := m.apply(item.Start, item.Start+item.afterLen(), item.Before); err != nil {
		return false, fmt.Errorf("undo %v: %w", item, err)
	}
	m.position--
	logger.Debugf("History: Undid %v (position %d/%d)", item, m.position, len(m.items))
	return true, nil
}

// Redo re-applies the next undone item. It returns false when there is
// nothing to redo.
func (m *Manager) Redo() (bool, error) {
	if !m.CanRedo() {
		return false, nil
	}

	item := m.items[m.position]
	if err := m.apply(item.Start, item.Start+item.beforeLen(), item.After); err != nil {
		return false, fmt.Errorf("redo %v: %w", item, err)
	}
	m.position++
	logger.Debugf("History: Redid %v (position %d/%d)", item, m.position, len(m.items))
	return true, nil
}

// apply performs one replacement with recording suspended and leaves the
// caret right after the inserted text.
func (m *Manager) apply(start, end int, text string) error {
	m.applying = true
	defer func() { m.applying = false }()

	m.buf.ClearDecorations()
	if err := m.buf.Replace(start, end, text); err != nil {
		if errors.Is(err, ErrOutOfRange) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	m.buf.SetCaret(start + len([]rune(text)))
	return nil
}

// CanUndo checks if there are applied items.
func (m *Manager) CanUndo() bool {
	return m.position > 0
}

// CanRedo checks if there are undone items.
func (m *Manager) CanRedo() bool {
	return m.position < len(m.items)
}

// Clear empties the history.
func (m *Manager) Clear() {
	m.items = m.items[:0]
	m.position = 0
	logger.Debugf("History: Cleared")
}

// Position is the number of applied items.
func (m *Manager) Position() int { return m.position }

// Len is the number of recorded items, applied or undone.
func (m *Manager) Len() int { return len(m.items) }

// Items returns a copy of the recorded items.
func (m *Manager) Items() []EditItem {
	return append([]EditItem(nil), m.items...)
}

func (m *Manager) MaxSize() int { return m.maxSize }

// SetMaxSize changes the bound and trims immediately.
func (m *Manager) SetMaxSize(n int) {
	m.maxSize = n
	m.trim()
}
