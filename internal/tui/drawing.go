// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// fill paints width cells of row y, starting at x, with blanks.
func fill(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawText draws text from x on row y by grapheme cluster, stopping before
// a cluster would cross x+maxWidth. Tabs expand to the next tab stop. It
// returns the number of cells used.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		if runes[0] == '\t' {
			spaces := tabWidth - used%tabWidth
			if used+spaces > maxWidth {
				spaces = maxWidth - used
			}
			fill(screen, x+used, y, spaces, style)
			used += spaces
			if used >= maxWidth {
				break
			}
			continue
		}
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		// Wide clusters occupy the following cell too
		for cw := 1; cw < w; cw++ {
			screen.SetContent(x+used+cw, y, ' ', nil, style)
		}
		used += w
	}
	return used
}

// digits is the width of the largest line number.
func digits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return int(math.Log10(float64(lineCount))) + 1
}

// formatLineNumber right-aligns n in a gutter of the given width; zero
// leaves the gutter blank.
func formatLineNumber(n, width int) string {
	if n == 0 {
		return fmt.Sprintf("%*s", width, "")
	}
	return fmt.Sprintf("%*d", width, n)
}
