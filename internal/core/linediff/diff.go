// Package linediff aligns two documents line by line using a longest
// common subsequence table.
package linediff

import "strings"

// Op says which side of a row is present.
type Op int

const (
	Equal  Op = iota // both sides, identical
	Delete           // left side only
	Insert           // right side only
)

func (o Op) String() string {
	switch o {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return "equal"
}

// Row is one line of an aligned view. Left is meaningful for Equal and
// Delete rows, Right for Equal and Insert rows.
type Row struct {
	Op    Op
	Left  string
	Right string
}

func (r Row) HasLeft() bool  { return r.Op != Insert }
func (r Row) HasRight() bool { return r.Op != Delete }

// SplitLines splits text on "\r\n", "\n" and "\r". Empty text is a single
// empty line; a trailing terminator yields a trailing empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Diff aligns a against b. Walking the result and keeping the rows with a
// left side reproduces a; the same holds for b on the right. When skipping
// a line of a or of b is equally good, the line of a is skipped first, so
// deletions come before insertions.
//
// Time and memory are O(len(a)*len(b)).
func Diff(a, b []string) []Row {
	n, m := len(a), len(b)

	// dp[i][j] is the LCS length of a[i:] and b[j:], stored row-major.
	w := m + 1
	dp := make([]int32, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i*w+j] = dp[(i+1)*w+j+1] + 1
			} else if down, right := dp[(i+1)*w+j], dp[i*w+j+1]; down >= right {
				dp[i*w+j] = down
			} else {
				dp[i*w+j] = right
			}
		}
	}

	rows := make([]Row, 0, n+m-int(dp[0]))
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			rows = append(rows, Row{Op: Equal, Left: a[i], Right: b[j]})
			i++
			j++
		case dp[(i+1)*w+j] >= dp[i*w+j+1]:
			rows = append(rows, Row{Op: Delete, Left: a[i]})
			i++
		default:
			rows = append(rows, Row{Op: Insert, Right: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		rows = append(rows, Row{Op: Delete, Left: a[i]})
	}
	for ; j < m; j++ {
		rows = append(rows, Row{Op: Insert, Right: b[j]})
	}
	return rows
}

// DiffText splits both texts into lines and aligns them.
func DiffText(a, b string) []Row {
	return Diff(SplitLines(a), SplitLines(b))
}

// Summary counts rows by kind.
type Summary struct {
	Equal    int
	Deleted  int
	Inserted int
	LinesA   int
	LinesB   int
}

// Identical reports whether the rows contain no changes.
func (s Summary) Identical() bool {
	return s.Deleted == 0 && s.Inserted == 0
}

// Summarize tallies rows.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Op {
		case Equal:
			s.Equal++
		case Delete:
			s.Deleted++
		case Insert:
			s.Inserted++
		}
	}
	s.LinesA = s.Equal + s.Deleted
	s.LinesB = s.Equal + s.Inserted
	return s
}

// Left collects the left sides of rows, in order.
func Left(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.HasLeft() {
			out = append(out, r.Left)
		}
	}
	return out
}

// Right collects the right sides of rows, in order.
func Right(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.HasRight() {
			out = append(out, r.Right)
		}
	}
	return out
}
