package core

import (
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Replace substitutes the runes in [start, end) with text as one edit.
func (e *Editor) Replace(start, end int, text string) error {
	e.lock()
	defer e.unlock()
	return e.buf.Replace(start, end, text)
}

// InsertText types text at the caret, replacing the selection if any.
func (e *Editor) InsertText(text string) error {
	e.lock()
	defer e.unlock()
	return e.replaceSelection(text)
}

// DeleteSelection removes the selected text. Without a selection it does
// nothing.
func (e *Editor) DeleteSelection() error {
	e.lock()
	defer e.unlock()
	if _, ok := e.buf.Selection(); !ok {
		return nil
	}
	return e.replaceSelection("")
}

func (e *Editor) replaceSelection(text string) error {
	r, _ := e.buf.Selection()
	if err := e.buf.Replace(r.Start, r.End, text); err != nil {
		return err
	}
	e.buf.SetCaret(r.Start + len([]rune(text)))
	return nil
}

// Undo reverts the last edit. It reports false at the start of history.
func (e *Editor) Undo() (bool, error) {
	e.lock()
	defer e.unlock()
	ok, err := e.history.Undo()
	if ok {
		logger.Debugf("Editor: undo, position %d/%d", e.history.Position(), e.history.Len())
	}
	return ok, err
}

// Redo reapplies the next undone edit. It reports false at the end of
// history.
func (e *Editor) Redo() (bool, error) {
	e.lock()
	defer e.unlock()
	ok, err := e.history.Redo()
	if ok {
		logger.Debugf("Editor: redo, position %d/%d", e.history.Position(), e.history.Len())
	}
	return ok, err
}

// ReplaceAll substitutes every literal occurrence of query with
// replacement, recorded as a single edit spanning the first to the last
// match. It returns the number of replacements.
func (e *Editor) ReplaceAll(query, replacement string, caseInsensitive bool) (int, error) {
	m, err := find.Compile(query, caseInsensitive)
	if err != nil {
		return 0, err
	}

	e.lock()
	defer e.unlock()
	e.rememberQuery(query)

	text := e.buf.String()
	spans := m.FindAll(text)
	if len(spans) == 0 {
		return 0, nil
	}
	start, end := spans[0].Start, spans[len(spans)-1].End
	middle, err := e.buf.Slice(start, end)
	if err != nil {
		return 0, err
	}
	out, n := m.ReplaceAllCount(middle, replacement)
	if err := e.buf.Replace(start, end, out); err != nil {
		return 0, err
	}
	e.buf.SetCaret(start + len([]rune(out)))
	logger.Infof("Editor: replaced %d occurrence(s) of %q", n, query)
	return n, nil
}

// ReplaceCurrent substitutes the current match with replacement, then moves
// to the next match of the same query. It reports false when no match is
// current.
func (e *Editor) ReplaceCurrent(replacement string) (bool, error) {
	e.lock()
	defer e.unlock()

	m := e.find.Matcher()
	index, _ := e.find.Position()
	spans := e.find.Spans()
	if m == nil || index < 0 || index >= len(spans) {
		return false, nil
	}
	span := spans[index]
	if err := e.buf.Replace(span.Start, span.End, replacement); err != nil {
		return false, err
	}
	caret := span.Start + len([]rune(replacement))
	e.buf.SetCaret(caret)

	// The edit cleared the matches; search again past the replacement
	e.search(m.Query(), m.CaseInsensitive())
	if next, ok := e.find.NextFrom(caret); ok {
		e.selectMatch(next)
	} else {
		e.showMatches()
	}
	return true, nil
}

// search runs query over the document. Callers refresh the highlights.
func (e *Editor) search(query string, caseInsensitive bool) int {
	return e.find.Search(e.buf.String(), query, caseInsensitive)
}

// showMatches lays the match highlights and announces the find state.
func (e *Editor) showMatches() {
	index, total := e.find.Position()
	e.highlight.Show(e.find.Spans(), index)
	e.dispatch(event.TypeMatchesChanged, event.MatchesChangedData{Index: index, Total: total})
	e.after(func() { e.status.MatchesChanged(index, total) })
}
