package find

import (
	"sync"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Manager keeps the find state of one editing session: the last query and
// where navigation stands among its matches.
type Manager struct {
	mutex   sync.RWMutex // Protects internal state
	matcher *Matcher
	nav     *Navigator
}

// NewManager creates a find manager with no active search.
func NewManager() *Manager {
	return &Manager{nav: NewNavigator(nil)}
}

// Search finds all matches of query in text and resets navigation. It
// returns the match count; an empty query clears the search.
func (m *Manager) Search(text, query string, caseInsensitive bool) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	matcher, err := Compile(query, caseInsensitive)
	if err != nil {
		m.matcher = nil
		m.nav = NewNavigator(nil)
		return 0
	}
	m.matcher = matcher
	m.nav = NewNavigator(matcher.FindAll(text))
	logger.Debugf("Find: %d match(es) for %q (case-insensitive=%v)", m.nav.Len(), query, caseInsensitive)
	return m.nav.Len()
}

// Next moves to the next match, wrapping around.
func (m *Manager) Next() (Span, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.nav.Next()
}

// Prev moves to the previous match, wrapping around.
func (m *Manager) Prev() (Span, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.nav.Prev()
}

// NextFrom moves to the first match at or after offset, wrapping around.
func (m *Manager) NextFrom(offset int) (Span, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.nav.NextFrom(offset)
}

// Clear forgets the matches but keeps the query for a later re-run.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.nav.Len() > 0 {
		logger.Debugf("Find: Clearing %d match(es)", m.nav.Len())
	}
	m.nav = NewNavigator(nil)
}

// Matcher returns the compiled last query, nil if none.
func (m *Manager) Matcher() *Matcher {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.matcher
}

// Spans returns the current match list.
func (m *Manager) Spans() []Span {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.nav.Spans()
}

// Position returns the 0-based current match index and the match count.
func (m *Manager) Position() (index, total int) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.nav.Index(), m.nav.Len()
}
