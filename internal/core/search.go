package core

import (
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Find searches the document for query and selects the first match at or
// after the caret, wrapping to the top. It returns the match count.
func (e *Editor) Find(query string, caseInsensitive bool) int {
	e.lock()
	defer e.unlock()

	n := e.search(query, caseInsensitive)
	if span, ok := e.find.NextFrom(e.buf.Caret()); ok {
		e.selectMatch(span)
	} else {
		e.showMatches()
	}
	e.rememberQuery(query)
	return n
}

// rememberQuery adds query to the store's search suggestions once the
// session lock is released.
func (e *Editor) rememberQuery(query string) {
	if e.store == nil || query == "" {
		return
	}
	db := e.store
	e.after(func() {
		if err := db.AddQuery(query); err != nil {
			logger.Warnf("Editor: could not record search query: %v", err)
		}
	})
}

// FindDefault is Find using the session's case sensitivity setting.
func (e *Editor) FindDefault(query string) int {
	return e.Find(query, e.caseInsensitive)
}

// FindNext selects the following match, cycling to the first after the
// last. After an edit cleared the matches, the last query is run again.
func (e *Editor) FindNext() (find.Span, bool) {
	return e.step((*find.Manager).Next)
}

// FindPrev selects the preceding match, cycling to the last before the
// first.
func (e *Editor) FindPrev() (find.Span, bool) {
	return e.step((*find.Manager).Prev)
}

func (e *Editor) step(move func(*find.Manager) (find.Span, bool)) (find.Span, bool) {
	e.lock()
	defer e.unlock()

	if _, total := e.find.Position(); total == 0 {
		m := e.find.Matcher()
		if m == nil {
			return find.Span{}, false
		}
		if e.search(m.Query(), m.CaseInsensitive()) == 0 {
			e.showMatches()
			return find.Span{}, false
		}
		span, ok := e.find.NextFrom(e.buf.Caret())
		if ok {
			e.selectMatch(span)
		}
		return span, ok
	}

	span, ok := move(e.find)
	if ok {
		e.selectMatch(span)
	}
	return span, ok
}

// Matches returns the current match spans and the current index (-1 when
// none is selected).
func (e *Editor) Matches() ([]find.Span, int) {
	e.lock()
	defer e.unlock()
	index, _ := e.find.Position()
	return append([]find.Span(nil), e.find.Spans()...), index
}

// ClearFind drops the matches and their highlights.
func (e *Editor) ClearFind() {
	e.lock()
	defer e.unlock()
	e.find.Clear()
	e.showMatches()
}

func (e *Editor) selectMatch(span find.Span) {
	e.buf.Select(span.Start, span.End)
	e.lastSelection = e.currentSelection()
	e.showMatches()
}
