// internal/buffer/text.go
package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/SEPLEMBER/Oxy-test/internal/types"
)

// Text is an editable document held as runes, with a caret, an optional
// selection and decorations. It is not safe for concurrent use.
type Text struct {
	runes       []rune
	caret       int
	selAnchor   int // -1 when nothing is selected
	selEnd      int
	decorations []Decoration
	listeners   []Listener
	filePath    string
	modified    bool // Track if buffer has unsaved changes
}

// New creates a Text holding content, caret at the start.
func New(content string) *Text {
	return &Text{
		runes:     []rune(content),
		selAnchor: -1,
	}
}

// Subscribe registers l for change notifications.
func (t *Text) Subscribe(l Listener) {
	t.listeners = append(t.listeners, l)
}

func (t *Text) String() string { return string(t.runes) }

// Len returns the length in runes.
func (t *Text) Len() int { return len(t.runes) }

// Slice returns the text in [start, end).
func (t *Text) Slice(start, end int) (string, error) {
	if err := t.check(start, end); err != nil {
		return "", err
	}
	return string(t.runes[start:end]), nil
}

func (t *Text) check(start, end int) error {
	if start < 0 || end < start || end > len(t.runes) {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrOutOfRange, start, end, len(t.runes))
	}
	return nil
}

// Replace substitutes [start, end) with text and notifies listeners. The
// caret follows the edit: after it when it was inside or behind the span.
func (t *Text) Replace(start, end int, text string) error {
	if err := t.check(start, end); err != nil {
		return err
	}
	before := string(t.runes[start:end])
	if before == text {
		return nil
	}

	inserted := []rune(text)
	next := make([]rune, 0, len(t.runes)-(end-start)+len(inserted))
	next = append(next, t.runes[:start]...)
	next = append(next, inserted...)
	next = append(next, t.runes[end:]...)
	t.runes = next

	shift := len(inserted) - (end - start)
	switch {
	case t.caret >= end:
		t.caret += shift
	case t.caret > start:
		t.caret = start + len(inserted)
	}
	t.selAnchor = -1
	t.modified = true

	d := Delta{Start: start, Before: before, After: text}
	for _, l := range t.listeners {
		l.OnBufferChanged(d)
	}
	return nil
}

// Insert adds text at pos.
func (t *Text) Insert(pos int, text string) error {
	return t.Replace(pos, pos, text)
}

// Delete removes [start, end).
func (t *Text) Delete(start, end int) error {
	return t.Replace(start, end, "")
}

// SetText replaces the whole document as one edit.
func (t *Text) SetText(text string) error {
	return t.Replace(0, len(t.runes), text)
}

// Reset loads content without notifying listeners or marking the text
// modified. Used when a document is opened or created.
func (t *Text) Reset(content string) {
	t.runes = []rune(content)
	t.caret = 0
	t.selAnchor = -1
	t.decorations = nil
	t.modified = false
}

// Caret returns the caret offset.
func (t *Text) Caret() int { return t.caret }

// SetCaret moves the caret, clamped into the text.
func (t *Text) SetCaret(pos int) {
	t.caret = clamp(pos, 0, len(t.runes))
}

// Select marks [start, end) as selected and puts the caret at end.
func (t *Text) Select(start, end int) {
	start = clamp(start, 0, len(t.runes))
	end = clamp(end, 0, len(t.runes))
	t.selAnchor, t.selEnd = start, end
	t.caret = end
}

// Selection returns the ordered selected range.
func (t *Text) Selection() (types.Range, bool) {
	if t.selAnchor < 0 || t.selAnchor == t.selEnd {
		return types.Range{Start: t.caret, End: t.caret}, false
	}
	if t.selAnchor > t.selEnd {
		return types.Range{Start: t.selEnd, End: t.selAnchor}, true
	}
	return types.Range{Start: t.selAnchor, End: t.selEnd}, true
}

func (t *Text) ClearSelection() { t.selAnchor = -1 }

// AddDecoration lays a marker over the text.
func (t *Text) AddDecoration(d Decoration) {
	t.decorations = append(t.decorations, d)
}

// Decorations returns the current markers.
func (t *Text) Decorations() []Decoration { return t.decorations }

// ClearDecorations drops every marker.
func (t *Text) ClearDecorations() { t.decorations = nil }

// ClearDecorationsOf drops markers of one kind.
func (t *Text) ClearDecorationsOf(kind DecorationKind) {
	kept := t.decorations[:0]
	for _, d := range t.decorations {
		if d.Kind != kind {
			kept = append(kept, d)
		}
	}
	t.decorations = kept
}

// PositionOf converts a rune offset into a line/column position. "\r\n",
// "\n" and "\r" all end a line.
func (t *Text) PositionOf(offset int) types.Position {
	return t.advance(types.Position{}, 0, clamp(offset, 0, len(t.runes)))
}

// PositionsOf converts many offsets in one pass when they are ascending.
// An offset below its predecessor restarts the scan.
func (t *Text) PositionsOf(offsets []int) []types.Position {
	out := make([]types.Position, len(offsets))
	var pos types.Position
	at := 0
	for k, offset := range offsets {
		offset = clamp(offset, 0, len(t.runes))
		if offset < at {
			pos, at = types.Position{}, 0
		}
		pos = t.advance(pos, at, offset)
		at = offset
		out[k] = pos
	}
	return out
}

// advance moves pos, the position of rune index from, on to index to.
func (t *Text) advance(pos types.Position, from, to int) types.Position {
	for i := from; i < to; i++ {
		switch t.runes[i] {
		case '\n':
			pos.Line++
			pos.Col = 0
		case '\r':
			if i+1 < len(t.runes) && t.runes[i+1] == '\n' {
				if i+1 == to {
					pos.Col++ // between '\r' and '\n'
					continue
				}
				i++
			}
			pos.Line++
			pos.Col = 0
		default:
			pos.Col++
		}
	}
	return pos
}

// OffsetOf converts a position back into a rune offset. A column past the
// end of its line stops at the line end; a line past the last one maps to
// the end of the text.
func (t *Text) OffsetOf(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		for i < len(t.runes) && t.runes[i] != '\n' && t.runes[i] != '\r' {
			i++
		}
		if i == len(t.runes) {
			return i
		}
		if t.runes[i] == '\r' && i+1 < len(t.runes) && t.runes[i+1] == '\n' {
			i++
		}
		i++
	}
	for col := 0; col < pos.Col && i < len(t.runes) && t.runes[i] != '\n' && t.runes[i] != '\r'; col++ {
		i++
	}
	return i
}

// ByteLen returns the UTF-8 size of the text.
func (t *Text) ByteLen() int {
	n := 0
	for _, r := range t.runes {
		n += utf8.RuneLen(r)
	}
	return n
}

func (t *Text) FilePath() string { return t.filePath }

func (t *Text) SetFilePath(path string) { t.filePath = path }

// IsModified returns true if the buffer has unsaved changes.
func (t *Text) IsModified() bool { return t.modified }

func (t *Text) SetModified(modified bool) { t.modified = modified }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
