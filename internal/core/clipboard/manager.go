// Package clipboard holds copied text, in the system clipboard when one is
// available and in a private register otherwise.
package clipboard

import (
	"sync"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/atotto/clipboard"
)

// System is the platform clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type atottoClipboard struct{}

func (atottoClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (atottoClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Manager is a copy register. Writes always land in the private register
// and, when enabled, in the system clipboard too; reads prefer the system
// clipboard so text copied elsewhere can be pasted.
type Manager struct {
	mu       sync.Mutex
	system   System
	register string
	hasText  bool
}

// NewManager creates a register that mirrors to the platform clipboard when
// useSystem is set and the platform has one.
func NewManager(useSystem bool) *Manager {
	if useSystem && !clipboard.Unsupported {
		return &Manager{system: atottoClipboard{}}
	}
	return &Manager{}
}

// NewManagerWith creates a register backed by sys, which may be nil.
func NewManagerWith(sys System) *Manager {
	return &Manager{system: sys}
}

// Copy stores text.
func (m *Manager) Copy(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.register, m.hasText = text, true
	if m.system != nil {
		if err := m.system.WriteAll(text); err != nil {
			logger.Warnf("Clipboard: system write failed, keeping text internally: %v", err)
		}
	}
	logger.Debugf("Clipboard: Copied %d bytes", len(text))
}

// Text returns the text to paste and whether there is any.
func (m *Manager) Text() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.system != nil {
		s, err := m.system.ReadAll()
		if err == nil && s != "" {
			return s, true
		}
		if err != nil {
			logger.Debugf("Clipboard: system read failed, using register: %v", err)
		}
	}
	return m.register, m.hasText && m.register != ""
}
