package linediff

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Row prefixes of the plain listing.
const (
	prefixEqual  = "    "
	prefixDelete = "[-] "
	prefixInsert = "[+] "
)

// FormatRows writes one line per row: deletions show the left line, insertions
// the right one, equal rows either.
func FormatRows(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		switch r.Op {
		case Equal:
			fmt.Fprintf(bw, "%s%s\n", prefixEqual, r.Left)
		case Delete:
			fmt.Fprintf(bw, "%s%s\n", prefixDelete, r.Left)
		case Insert:
			fmt.Fprintf(bw, "%s%s\n", prefixInsert, r.Right)
		}
	}
	return bw.Flush()
}

// Marker is the gutter symbol of a side-by-side row.
func (r Row) Marker() string {
	switch r.Op {
	case Delete:
		return "<"
	case Insert:
		return ">"
	}
	return "="
}

// expandTabs makes display width predictable.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// fitColumn pads or truncates s to exactly width display cells.
func fitColumn(s string, width int) string {
	s = runewidth.Truncate(expandTabs(s), width, "…")
	return runewidth.FillRight(s, width)
}

// SideBySide renders rows as two columns of a total display width, with the
// row marker in between. Wide characters count as two cells.
func SideBySide(rows []Row, width int) []string {
	col := (width - 3) / 2
	if col < 1 {
		col = 1
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		left, right := "", ""
		if r.HasLeft() {
			left = r.Left
		}
		if r.HasRight() {
			right = r.Right
		}
		line := fitColumn(left, col) + " " + r.Marker() + " " + fitColumn(right, col)
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
