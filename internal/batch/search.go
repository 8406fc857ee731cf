package batch

import (
	"context"
	"strings"

	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
)

// Hit is one matching line.
type Hit struct {
	Path  string
	Name  string
	Line  int    // 1-based
	Text  string // the whole line, without terminator
	Spans []find.Span
}

// Preview is the line with surrounding whitespace removed, for listings.
func (h Hit) Preview() string {
	return strings.TrimSpace(h.Text)
}

// SearchVisitor reports every line containing the query. A line counts as
// one match however many occurrences it holds.
type SearchVisitor struct {
	Matcher *find.Matcher
	Text    *fileio.TextIO
	OnHit   func(Hit)
}

func (v *SearchVisitor) VisitFile(ctx context.Context, job *Job, f fileio.Entry) error {
	return v.Text.ScanLines(ctx, f.Path, func(n int, line string) error {
		spans := v.Matcher.FindAll(line)
		if len(spans) == 0 {
			return nil
		}
		job.Counters.MatchesFound++
		if v.OnHit != nil {
			v.OnHit(Hit{Path: f.Path, Name: f.Name, Line: n, Text: line, Spans: spans})
		}
		job.Report()
		return nil
	})
}
