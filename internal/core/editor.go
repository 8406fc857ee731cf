// internal/core/editor.go
package core

import (
	"errors"
	"sync"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/buffer"
	"github.com/SEPLEMBER/Oxy-test/internal/core/clipboard"
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/core/highlight"
	"github.com/SEPLEMBER/Oxy-test/internal/core/history"
	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/plugin"
	"github.com/SEPLEMBER/Oxy-test/internal/statusbar"
	"github.com/SEPLEMBER/Oxy-test/internal/store"
	"github.com/SEPLEMBER/Oxy-test/internal/types"
)

var (
	// ErrNoFilePath is returned by Save for a document that was never named.
	ErrNoFilePath = errors.New("document has no file path")
	// ErrNoSelection is returned by Copy and Cut with nothing selected.
	ErrNoSelection = errors.New("nothing selected")
)

// Options configure a new Editor. Text is required.
type Options struct {
	Text            *fileio.TextIO
	MaxHistory      int // 0 means history.DefaultMaxHistory
	CaseInsensitive bool
	Clipboard       *clipboard.Manager // nil means a private register
	Events          *event.Manager     // nil means a private bus
	Store           *store.DB          // optional: recent files, history snapshots
	StatusDelay     time.Duration
	Plugins         []plugin.Plugin
	PluginConfig    map[string]map[string]interface{}
}

// Editor is one editing session: a document, its undo history, find state
// and clipboard. Methods are safe for concurrent use; events are dispatched
// after the session lock is released so handlers may call back in.
type Editor struct {
	mu      sync.Mutex
	pending []func() // run by unlock

	text      *fileio.TextIO
	buf       *buffer.Text
	history   *history.Manager
	find      *find.Manager
	highlight *highlight.Manager
	clipboard *clipboard.Manager
	events    *event.Manager
	store     *store.DB
	status    *statusbar.Aggregator

	caseInsensitive bool
	lastSelection   types.Range
	bom             fileio.BOM // of the open file, kept on save
	statusMessage   string

	commands     map[string]plugin.CommandFunc
	plugins      *plugin.Manager
	pluginConfig map[string]map[string]interface{}
}

// NewEditor creates a session holding an empty, unnamed document and starts
// its plugins.
func NewEditor(opts Options) *Editor {
	maxHistory := opts.MaxHistory
	if maxHistory == 0 {
		maxHistory = history.DefaultMaxHistory
	}
	e := &Editor{
		text:            opts.Text,
		buf:             buffer.New(""),
		find:            find.NewManager(),
		clipboard:       opts.Clipboard,
		events:          opts.Events,
		store:           opts.Store,
		caseInsensitive: opts.CaseInsensitive,
		commands:        make(map[string]plugin.CommandFunc),
		plugins:         plugin.NewManager(),
		pluginConfig:    opts.PluginConfig,
	}
	if e.clipboard == nil {
		e.clipboard = clipboard.NewManagerWith(nil)
	}
	if e.events == nil {
		e.events = event.NewManager()
	}
	e.history = history.NewManager(e.buf, maxHistory)
	e.highlight = highlight.NewManager(e.buf)
	e.status = statusbar.NewAggregator(opts.StatusDelay, func(s string) {
		e.events.Dispatch(event.TypeStatusChanged, event.StatusChangedData{Summary: s})
	})

	// History first: it must see the change before anything reacts to it
	e.buf.Subscribe(e.history)
	e.buf.Subscribe(buffer.ListenerFunc(e.onBufferChanged))

	for _, p := range opts.Plugins {
		if err := e.plugins.Register(p); err != nil {
			logger.Warnf("Editor: %v", err)
		}
	}
	e.plugins.InitializePlugins(e)
	return e
}

// Close stops plugins and pending background work.
func (e *Editor) Close() {
	e.plugins.ShutdownPlugins()
	e.status.Stop()
}

func (e *Editor) lock() {
	e.mu.Lock()
}

// unlock releases the session and then runs the work queued by after.
func (e *Editor) unlock() {
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// after queues fn to run once the session lock is released.
func (e *Editor) after(fn func()) {
	e.pending = append(e.pending, fn)
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	e.after(func() { e.events.Dispatch(t, data) })
}

// onBufferChanged runs under the session lock for every buffer mutation,
// including undo and redo.
func (e *Editor) onBufferChanged(d buffer.Delta) {
	if _, total := e.find.Position(); total > 0 {
		e.find.Clear()
		e.highlight.Clear()
		e.dispatch(event.TypeMatchesChanged, event.MatchesChangedData{Index: -1, Total: 0})
		e.after(func() { e.status.MatchesChanged(-1, 0) })
	}
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Delta: d})
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo: e.history.CanUndo(),
		CanRedo: e.history.CanRedo(),
	})
	e.status.TextChanged(e.Text)
}

// Events returns the session's event bus.
func (e *Editor) Events() *event.Manager {
	return e.events
}

// Text returns the document content.
func (e *Editor) Text() string {
	e.lock()
	defer e.unlock()
	return e.buf.String()
}

// FilePath returns the document path, empty for a new document.
func (e *Editor) FilePath() string {
	e.lock()
	defer e.unlock()
	return e.buf.FilePath()
}

// IsModified reports unsaved changes.
func (e *Editor) IsModified() bool {
	e.lock()
	defer e.unlock()
	return e.buf.IsModified()
}

// Decorations returns the markers currently laid over the text.
func (e *Editor) Decorations() []buffer.Decoration {
	e.lock()
	defer e.unlock()
	return append([]buffer.Decoration(nil), e.buf.Decorations()...)
}

// Status returns the summary line: counts plus the match indicator.
func (e *Editor) Status() string {
	e.lock()
	defer e.unlock()
	index, total := e.find.Position()
	return statusbar.Summary(statusbar.Count(e.buf.String()), index, total)
}

// CanUndo reports whether Undo would change the document.
func (e *Editor) CanUndo() bool {
	e.lock()
	defer e.unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (e *Editor) CanRedo() bool {
	e.lock()
	defer e.unlock()
	return e.history.CanRedo()
}
