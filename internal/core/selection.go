package core

import "github.com/SEPLEMBER/Oxy-test/internal/types"

// Select marks [start, end) as selected, caret at end.
func (e *Editor) Select(start, end int) {
	e.lock()
	defer e.unlock()
	e.buf.Select(start, end)
	e.lastSelection = e.currentSelection()
}

// Selection returns the live selection, or the last one made in this
// session when nothing is selected now. ok is false when the range is
// empty.
func (e *Editor) Selection() (r types.Range, ok bool) {
	e.lock()
	defer e.unlock()
	if r, ok := e.buf.Selection(); ok {
		return r, true
	}
	return e.lastSelection, e.lastSelection.Len() > 0
}

// ClearSelection drops the live selection. The last selection is kept.
func (e *Editor) ClearSelection() {
	e.lock()
	defer e.unlock()
	e.buf.ClearSelection()
}

func (e *Editor) currentSelection() types.Range {
	r, _ := e.buf.Selection()
	return r
}
