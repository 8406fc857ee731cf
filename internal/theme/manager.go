// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
	onChange    func(*Theme)
}

// NewManager creates a manager holding the built-in themes plus the .toml
// themes found in themesDir, which may be empty. The active theme is
// "dark".
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	mgr.add(&Dark)
	mgr.add(&Light)

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	mgr.activeTheme = mgr.themes[Dark.Name]
	return mgr
}

// OnChange registers fn to run after the active theme changes.
func (m *Manager) OnChange(fn func(*Theme)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onChange = fn
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir scans the themes directory and loads its .toml files.
// A missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}
	files, err := os.ReadDir(m.themesDir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}
		m.add(theme)
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes from %s", loadedCount, m.themesDir)
	return nil
}

// LoadFile adds the theme in filePath and returns it.
func (m *Manager) LoadFile(filePath string) (*Theme, error) {
	theme, err := LoadThemeFromFile(filePath)
	if err != nil {
		return nil, err
	}
	m.mutex.Lock()
	m.add(theme)
	m.mutex.Unlock()
	return theme, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name, ignoring case.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		m.mutex.Unlock()
		return fmt.Errorf("theme '%s' not found", name)
	}
	changed := m.activeTheme != theme
	m.activeTheme = theme
	onChange := m.onChange
	m.mutex.Unlock()

	if !changed {
		logger.Debugf("Theme '%s' already active, no change needed", name)
		return nil
	}
	logger.Infof("Active theme set to: %s", theme.Name)
	if onChange != nil {
		onChange(theme)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name, ignoring case.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
