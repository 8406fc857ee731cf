package find

import (
	"fmt"
	"sort"
)

// Navigator steps through a fixed list of spans, wrapping at both ends.
// Before the first step no span is current.
type Navigator struct {
	spans   []Span
	current int // -1 before the first step
}

// NewNavigator wraps spans, which must be sorted and non-overlapping.
func NewNavigator(spans []Span) *Navigator {
	return &Navigator{spans: spans, current: -1}
}

func (n *Navigator) Len() int { return len(n.spans) }

// Index is the 0-based index of the current span, -1 if none.
func (n *Navigator) Index() int { return n.current }

// Spans returns the underlying spans.
func (n *Navigator) Spans() []Span { return n.spans }

// Current returns the current span.
func (n *Navigator) Current() (Span, bool) {
	if n.current < 0 || n.current >= len(n.spans) {
		return Span{}, false
	}
	return n.spans[n.current], true
}

// Next advances to the following span, cycling back to the first after the
// last.
func (n *Navigator) Next() (Span, bool) {
	if len(n.spans) == 0 {
		return Span{}, false
	}
	n.current = (n.current + 1) % len(n.spans)
	return n.spans[n.current], true
}

// Prev steps back, cycling to the last span before the first.
func (n *Navigator) Prev() (Span, bool) {
	if len(n.spans) == 0 {
		return Span{}, false
	}
	if n.current <= 0 {
		n.current = len(n.spans) - 1
	} else {
		n.current--
	}
	return n.spans[n.current], true
}

// NextFrom moves to the first span starting at or after offset, or to the
// first span when there is none past it.
func (n *Navigator) NextFrom(offset int) (Span, bool) {
	if len(n.spans) == 0 {
		return Span{}, false
	}
	i := sort.Search(len(n.spans), func(i int) bool { return n.spans[i].Start >= offset })
	if i == len(n.spans) {
		i = 0
	}
	n.current = i
	return n.spans[i], true
}

// Indicator renders the position as "i/n", 1-based. Empty when there are no
// spans.
func (n *Navigator) Indicator() string {
	if len(n.spans) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", n.current+1, len(n.spans))
}
