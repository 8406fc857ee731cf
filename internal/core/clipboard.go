package core

import (
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/types"
)

// Copy puts the selected text on the clipboard.
func (e *Editor) Copy() error {
	e.lock()
	defer e.unlock()
	_, err := e.copySelection()
	return err
}

// Cut copies the selected text and removes it from the document.
func (e *Editor) Cut() error {
	e.lock()
	defer e.unlock()
	r, err := e.copySelection()
	if err != nil {
		return err
	}
	return e.buf.Replace(r.Start, r.End, "")
}

// copySelection copies the live selection and returns its range.
func (e *Editor) copySelection() (types.Range, error) {
	sel, ok := e.buf.Selection()
	if !ok {
		return types.Range{}, ErrNoSelection
	}
	text, err := e.buf.Slice(sel.Start, sel.End)
	if err != nil {
		return types.Range{}, err
	}
	e.clipboard.Copy(text)
	e.lastSelection = sel
	return sel, nil
}

// Paste inserts the clipboard text at the caret, replacing the selection.
// It reports false when the clipboard is empty.
func (e *Editor) Paste() (bool, error) {
	e.lock()
	defer e.unlock()
	text, ok := e.clipboard.Text()
	if !ok {
		return false, nil
	}
	if err := e.replaceSelection(text); err != nil {
		return false, err
	}
	logger.Debugf("Editor: pasted %d bytes", len(text))
	return true, nil
}
