// internal/buffer/buffer.go
package buffer

import "errors"

// ErrOutOfRange is returned when an offset range does not fit the text.
var ErrOutOfRange = errors.New("range out of bounds")

// Delta describes one replacement: the runes Before starting at Start were
// replaced by After. Offsets are rune indices.
type Delta struct {
	Start  int
	Before string
	After  string
}

// Listener is notified synchronously after every mutation of a Text.
type Listener interface {
	OnBufferChanged(d Delta)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(d Delta)

func (f ListenerFunc) OnBufferChanged(d Delta) { f(d) }

// DecorationKind tags transient markers laid over the text.
type DecorationKind int

const (
	DecorationUnderline DecorationKind = iota // spell-check style underline
	DecorationMatch                           // search match highlight
	DecorationCurrentMatch
)

// Decoration is a transient marker over [Start, End). Decorations do not
// survive programmatic replacement of the text.
type Decoration struct {
	Start int
	End   int
	Kind  DecorationKind
}
