// Package history provides undo/redo over a live text buffer via a bounded
// list of recorded replacements.
package history

import (
	"fmt"
	"unicode/utf8"
)

// EditItem is one recorded replacement: Before, which occupied
// [Start, Start+len(Before)) in runes, was replaced by After.
type EditItem struct {
	Start  int
	Before string
	After  string
}

// beforeLen and afterLen are rune lengths.
func (e EditItem) beforeLen() int { return utf8.RuneCountInString(e.Before) }
func (e EditItem) afterLen() int  { return utf8.RuneCountInString(e.After) }

func (e EditItem) String() string {
	return fmt.Sprintf("@%d %q->%q", e.Start, e.Before, e.After)
}
