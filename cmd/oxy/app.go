package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SEPLEMBER/Oxy-test/internal/config"
	"github.com/SEPLEMBER/Oxy-test/internal/core"
	"github.com/SEPLEMBER/Oxy-test/internal/core/clipboard"
	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/plugin"
	"github.com/SEPLEMBER/Oxy-test/internal/store"
	"github.com/SEPLEMBER/Oxy-test/internal/theme"
	"github.com/SEPLEMBER/Oxy-test/plugins/autosave"
	"golang.org/x/term"
)

// app is what every command runs against: configuration, the filesystem,
// output streams and the lazily opened settings database.
type app struct {
	cfg    *config.Config
	fsys   fileio.FS
	stdout io.Writer
	stderr io.Writer
	events *event.Manager

	db      *store.DB
	dbErr   error
	dbTried bool
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) *app {
	a := &app{
		cfg:    cfg,
		fsys:   fileio.OSFS{},
		stdout: stdout,
		stderr: stderr,
		events: event.NewManager(),
	}
	a.events.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		logger.Debugf("Theme changed to %s", e.Data.(event.ThemeChangedData).Name)
		return false
	})
	return a
}

// Close releases the database.
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Warnf("Closing %s: %v", a.db.Path(), err)
		}
	}
}

// store opens the settings database on first use.
func (a *app) store() (*store.DB, error) {
	if a.dbTried {
		return a.db, a.dbErr
	}
	a.dbTried = true
	if a.cfg.Store.Path == "" {
		a.dbErr = errors.New("no settings database configured")
		return nil, a.dbErr
	}
	a.db, a.dbErr = store.Open(a.cfg.Store.Path)
	return a.db, a.dbErr
}

// textIO binds the effective document settings: database values first,
// then the configuration.
func (a *app) textIO() (*fileio.TextIO, error) {
	var settings fileio.Settings = a.cfg
	if db, err := a.store(); err == nil {
		settings = db.Settings(a.cfg)
	} else {
		logger.Debugf("Settings database unavailable, using configuration: %v", err)
	}
	return fileio.FromSettings(a.fsys, settings)
}

// openEditor starts a session on path. Callers Close it.
func (a *app) openEditor(path string) (*core.Editor, error) {
	tio, err := a.textIO()
	if err != nil {
		return nil, err
	}
	db, _ := a.store()
	ed := a.cfg.Editor
	e := core.NewEditor(core.Options{
		Text:            tio,
		MaxHistory:      ed.MaxHistory,
		CaseInsensitive: ed.CaseInsensitive,
		Clipboard:       clipboard.NewManager(ed.SystemClipboard),
		Events:          a.events,
		Store:           db,
		StatusDelay:     ed.StatusDebounce.Duration,
		Plugins:         []plugin.Plugin{autosave.New()},
		PluginConfig: map[string]map[string]interface{}{
			"autosave": {
				"enabled":  ed.AutoSave,
				"interval": ed.AutoSaveInterval.String(),
			},
		},
	})
	if err := e.Open(path); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// themes loads the built-in and user themes and activates the configured
// one.
func (a *app) themes() *theme.Manager {
	dir := ""
	if base := config.Dir(); base != "" {
		dir = filepath.Join(base, config.ThemesDirName)
	}
	m := theme.NewManager(dir)
	m.OnChange(func(t *theme.Theme) {
		a.events.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
	})

	name := a.cfg.Theme.Name
	if a.cfg.Theme.File != "" {
		t, err := m.LoadFile(a.cfg.Theme.File)
		if err != nil {
			logger.Warnf("Theme file: %v", err)
		} else {
			name = t.Name
		}
	}
	if err := m.SetTheme(name); err != nil {
		logger.Warnf("%v, keeping %s", err, m.Current().Name)
	}
	return m
}

// terminal returns w as a terminal file, if it is one.
func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return f, true
}

// termWidth is the width of w when it is a terminal, else fallback.
func termWidth(w io.Writer, fallback int) int {
	f, ok := terminal(w)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.stdout, format, args...)
}
