// Package statusbar derives the document summary shown to the user and
// renders the status line.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/rivo/uniseg"
)

// Counts summarises a text.
type Counts struct {
	Lines int // terminators + 1, so empty text has one line
	Words int // whitespace separated tokens
	Chars int // user-perceived characters (grapheme clusters)
}

// Count computes the counts of text.
func Count(text string) Counts {
	return Counts{
		Lines: lineending.CountLines(text),
		Words: len(strings.Fields(text)),
		Chars: uniseg.GraphemeClusterCount(text),
	}
}

// MatchIndicator formats a zero-based match index as "match i/n". It is
// empty when there are no matches or index is out of range.
func MatchIndicator(index, total int) string {
	if total <= 0 || index < 0 || index >= total {
		return ""
	}
	return fmt.Sprintf("match %d/%d", index+1, total)
}

// Summary is the status line for c, with the match indicator appended when
// there is one.
func Summary(c Counts, index, total int) string {
	s := fmt.Sprintf("Lines: %d, Words: %d, Chars: %d", c.Lines, c.Words, c.Chars)
	if m := MatchIndicator(index, total); m != "" {
		s += ", " + m
	}
	return s
}
