// internal/types/position.go
package types

import "fmt"

// Position is a line/column location in a document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// String renders the position 1-based, the way it is shown to users.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// Range is a half-open span of rune offsets into a document.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}
