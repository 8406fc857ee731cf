package core

import "github.com/SEPLEMBER/Oxy-test/internal/types"

// Caret returns the caret as a rune offset.
func (e *Editor) Caret() int {
	e.lock()
	defer e.unlock()
	return e.buf.Caret()
}

// SetCaret moves the caret, clamped into the document, and drops the
// selection.
func (e *Editor) SetCaret(offset int) {
	e.lock()
	defer e.unlock()
	e.buf.ClearSelection()
	e.buf.SetCaret(offset)
}

// CaretPosition returns the caret as a line/column position.
func (e *Editor) CaretPosition() types.Position {
	e.lock()
	defer e.unlock()
	return e.buf.PositionOf(e.buf.Caret())
}

// MoveTo puts the caret at pos. Out-of-range lines and columns stop at the
// nearest end.
func (e *Editor) MoveTo(pos types.Position) {
	e.lock()
	defer e.unlock()
	e.buf.ClearSelection()
	e.buf.SetCaret(e.buf.OffsetOf(pos))
}

// PositionOf converts a rune offset into a line/column position.
func (e *Editor) PositionOf(offset int) types.Position {
	e.lock()
	defer e.unlock()
	return e.buf.PositionOf(offset)
}

// PositionsOf converts ascending rune offsets in one pass over the text.
func (e *Editor) PositionsOf(offsets []int) []types.Position {
	e.lock()
	defer e.unlock()
	return e.buf.PositionsOf(offsets)
}
