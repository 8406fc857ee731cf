// Package find implements literal text search and replace with optional
// Unicode case folding, plus match navigation for a single document.
package find

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// ErrEmptyQuery is returned by Compile for an empty query.
var ErrEmptyQuery = errors.New("empty search query")

// Span is a half-open range [Start, End) of rune offsets into the searched text.
type Span struct {
	Start int
	End   int
}

// Matcher is a compiled literal query. Characters of the query never act
// as pattern syntax.
type Matcher struct {
	query           string
	caseInsensitive bool
	re              *regexp.Regexp
}

// Compile prepares query for repeated use.
func Compile(query string, caseInsensitive bool) (*Matcher, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	pattern := regexp.QuoteMeta(query)
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err // unreachable for quoted input
	}
	return &Matcher{query: query, caseInsensitive: caseInsensitive, re: re}, nil
}

// MustCompile is Compile for queries known to be non-empty.
func MustCompile(query string, caseInsensitive bool) *Matcher {
	m, err := Compile(query, caseInsensitive)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matcher) Query() string { return m.query }

func (m *Matcher) CaseInsensitive() bool { return m.caseInsensitive }

// FindAll returns every non-overlapping occurrence in haystack, left to
// right. A nil Matcher matches nothing.
func (m *Matcher) FindAll(haystack string) []Span {
	if m == nil {
		return nil
	}
	locs := m.re.FindAllStringIndex(haystack, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(locs))
	byteAt, runeAt := 0, 0
	toRune := func(b int) int {
		runeAt += utf8.RuneCountInString(haystack[byteAt:b])
		byteAt = b
		return runeAt
	}
	for _, loc := range locs {
		start := toRune(loc[0])
		end := toRune(loc[1])
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// MatchString reports whether haystack contains the query.
func (m *Matcher) MatchString(haystack string) bool {
	return m != nil && m.re.MatchString(haystack)
}

// Count returns the number of occurrences in haystack.
func (m *Matcher) Count(haystack string) int {
	if m == nil {
		return 0
	}
	return len(m.re.FindAllStringIndex(haystack, -1))
}

// ReplaceAll substitutes every occurrence with replacement, taken literally.
func (m *Matcher) ReplaceAll(haystack, replacement string) string {
	out, _ := m.ReplaceAllCount(haystack, replacement)
	return out
}

// ReplaceAllCount is ReplaceAll that also reports how many occurrences were
// replaced.
func (m *Matcher) ReplaceAllCount(haystack, replacement string) (string, int) {
	if m == nil {
		return haystack, 0
	}
	n := 0
	out := m.re.ReplaceAllStringFunc(haystack, func(string) string {
		n++
		return replacement
	})
	return out, n
}

// FindAll returns the occurrences of query in haystack. An empty query
// yields no spans.
func FindAll(haystack, query string, caseInsensitive bool) []Span {
	m, err := Compile(query, caseInsensitive)
	if err != nil {
		return nil
	}
	return m.FindAll(haystack)
}

// ReplaceAll replaces every occurrence of query in haystack with the literal
// replacement. An empty query leaves haystack unchanged.
func ReplaceAll(haystack, query string, caseInsensitive bool, replacement string) string {
	m, err := Compile(query, caseInsensitive)
	if err != nil {
		return haystack
	}
	return m.ReplaceAll(haystack, replacement)
}
