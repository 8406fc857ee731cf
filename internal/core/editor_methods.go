package core

import (
	"errors"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/core/history"
	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/store"
	"github.com/SEPLEMBER/Oxy-test/internal/types"
)

// New replaces the document with an empty, unnamed one.
func (e *Editor) New() {
	e.lock()
	defer e.unlock()
	e.load("", "", fileio.NoBOM)
}

// Open reads path into the session. The undo history starts empty. When a
// line ending is configured the document is held with "\n" terminators and
// converted on save, so offsets and history hashes do not depend on the
// file's style.
func (e *Editor) Open(path string) error {
	content, bom, err := e.text.ReadAllBOM(path)
	if err != nil {
		return err
	}
	if e.text.LineEnding() != lineending.Unspecified {
		content = lineending.Normalize(content, lineending.Unix)
	}

	e.lock()
	defer e.unlock()
	e.load(path, content, bom)
	e.remember(path)
	logger.Infof("Editor: opened %s (%d runes)", path, e.buf.Len())
	return nil
}

// load resets every piece of per-document state.
func (e *Editor) load(path, content string, bom fileio.BOM) {
	e.buf.Reset(content)
	e.bom = bom
	e.buf.SetFilePath(path)
	e.history.Clear()
	e.find.Clear()
	e.lastSelection = types.Range{}
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{})
	e.after(func() {
		e.status.MatchesChanged(-1, 0)
		e.status.Flush(content)
	})
}

// Save writes the document to its path and clears the undo history. With a
// store attached the history is persisted first, so a later session can
// restore it against the saved text.
func (e *Editor) Save() error {
	e.lock()
	defer e.unlock()
	return e.save()
}

// SaveAs names the document path and saves it there.
func (e *Editor) SaveAs(path string) error {
	e.lock()
	defer e.unlock()
	if path == "" {
		return ErrNoFilePath
	}
	e.buf.SetFilePath(path)
	return e.save()
}

func (e *Editor) save() error {
	path := e.buf.FilePath()
	if path == "" {
		return ErrNoFilePath
	}
	content := e.buf.String()

	if e.store != nil {
		var err error
		if e.history.Len() > 0 {
			err = e.store.SaveSnapshot(path, e.history.Snapshot(content))
		} else {
			err = e.store.DeleteSnapshot(path)
		}
		if err != nil {
			logger.Warnf("Editor: could not persist history for %s: %v", path, err)
		}
	}
	if err := e.text.WriteAllBOM(path, content, e.bom); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	e.buf.SetModified(false)
	e.history.Clear()
	e.remember(path)
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{})
	logger.Infof("Editor: saved %s", path)
	return nil
}

func (e *Editor) remember(path string) {
	if e.store == nil {
		return
	}
	if err := e.store.AddRecent(path); err != nil {
		logger.Warnf("Editor: could not record recent file: %v", err)
	}
}

// SaveHistory persists the undo history under the document path.
func (e *Editor) SaveHistory() error {
	e.lock()
	defer e.unlock()
	if e.store == nil {
		return errors.New("no store attached")
	}
	path := e.buf.FilePath()
	if path == "" {
		return ErrNoFilePath
	}
	return e.store.SaveSnapshot(path, e.history.Snapshot(e.buf.String()))
}

// RestoreHistory loads the history persisted for the document path. It
// reports false, leaving the history empty, when there is none or it was
// taken from different text.
func (e *Editor) RestoreHistory() (bool, error) {
	e.lock()
	defer e.unlock()
	if e.store == nil {
		return false, errors.New("no store attached")
	}
	path := e.buf.FilePath()
	if path == "" {
		return false, ErrNoFilePath
	}

	snap, err := e.store.LoadSnapshot(path)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ok := e.history.Restore(snap, e.buf.String())
	if !ok {
		logger.Debugf("Editor: discarding stale history for %s", path)
	}
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo: e.history.CanUndo(),
		CanRedo: e.history.CanRedo(),
	})
	return ok, nil
}

// History returns a copy of the recorded edits and the history position.
func (e *Editor) History() ([]history.EditItem, int) {
	e.lock()
	defer e.unlock()
	return e.history.Items(), e.history.Position()
}
