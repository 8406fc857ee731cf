package tui

import (
	"context"
	"fmt"

	"github.com/SEPLEMBER/Oxy-test/internal/core/linediff"
	"github.com/SEPLEMBER/Oxy-test/internal/input"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/statusbar"
	"github.com/SEPLEMBER/Oxy-test/internal/theme"
	"github.com/SEPLEMBER/Oxy-test/internal/types"
	"github.com/gdamore/tcell/v2"
)

// DiffView shows aligned rows in two panes: a header line, the rows, and a
// status line. Line numbers are those of each side's own document.
type DiffView struct {
	rows      []linediff.Row
	leftNums  []int // 0 where the row has no left side
	rightNums []int
	gutter    int // digits of the largest line number

	leftName  string
	rightName string
	summary   linediff.Summary

	top    int
	height int // rows visible at the last draw

	themes *theme.Manager
	status *statusbar.StatusBar
	keys   *input.InputProcessor
}

// NewDiffView prepares rows for display, styled by the active theme of
// themes.
func NewDiffView(leftName, rightName string, rows []linediff.Row, themes *theme.Manager) *DiffView {
	v := &DiffView{
		rows:      rows,
		leftNums:  make([]int, len(rows)),
		rightNums: make([]int, len(rows)),
		leftName:  leftName,
		rightName: rightName,
		summary:   linediff.Summarize(rows),
		themes:    themes,
		keys:      input.NewInputProcessor(),
	}
	left, right := 0, 0
	for i, r := range rows {
		if r.HasLeft() {
			left++
			v.leftNums[i] = left
		}
		if r.HasRight() {
			right++
			v.rightNums[i] = right
		}
	}
	v.gutter = digits(max(left, right))
	v.status = v.withConfig(v.statusConfig())
	return v
}

func (v *DiffView) statusConfig() statusbar.Config {
	th := v.themes.Current()
	cfg := statusbar.DefaultConfig()
	cfg.StyleDefault = th.GetStyle(theme.StyleStatusBar)
	cfg.StyleModified = th.GetStyle(theme.StyleStatusBarModified)
	cfg.StyleMessage = th.GetStyle(theme.StyleStatusBarMessage)
	return cfg
}

// Top returns the index of the first visible row.
func (v *DiffView) Top() int {
	return v.top
}

// Status returns the status line.
func (v *DiffView) Status() *statusbar.StatusBar {
	return v.status
}

// contentHeight is the number of row lines between header and status.
func contentHeight(height int) int {
	return max(height-2, 0)
}

// ScrollTo makes row the first visible one, within bounds.
func (v *DiffView) ScrollTo(row int) {
	maxTop := max(len(v.rows)-max(v.height, 1), 0)
	v.top = min(max(row, 0), maxTop)
	v.status.SetCursorInfo(types.Position{Line: v.top})
}

// ScrollBy moves the view by n rows.
func (v *DiffView) ScrollBy(n int) {
	v.ScrollTo(v.top + n)
}

// NextChange scrolls to the next run of changed rows below the top. It
// reports false when the view cannot move towards one.
func (v *DiffView) NextChange() bool {
	for i := v.top + 1; i < len(v.rows); i++ {
		if v.hunkStart(i) {
			return v.moveTo(i)
		}
	}
	return false
}

// PrevChange scrolls to the previous run of changed rows above the top.
func (v *DiffView) PrevChange() bool {
	for i := min(v.top, len(v.rows)) - 1; i >= 0; i-- {
		if v.hunkStart(i) {
			return v.moveTo(i)
		}
	}
	return false
}

func (v *DiffView) moveTo(row int) bool {
	prev := v.top
	v.ScrollTo(row)
	return v.top != prev
}

func (v *DiffView) hunkStart(i int) bool {
	if v.rows[i].Op == linediff.Equal {
		return false
	}
	return i == 0 || v.rows[i-1].Op == linediff.Equal
}

// Draw renders the whole view onto screen.
func (v *DiffView) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	th := v.themes.Current()
	def := th.GetStyle(theme.StyleDefault)
	v.height = contentHeight(height)

	pane := (width - 1) / 2
	rightX := pane + 1

	header := th.GetStyle(theme.StyleDiffHeader)
	fill(screen, 0, 0, width, def)
	drawText(screen, 0, 0, pane, v.leftName, header)
	drawText(screen, rightX, 0, width-rightX, v.rightName, header)

	for y := 1; y <= v.height; y++ {
		fill(screen, 0, y, width, def)
		i := v.top + y - 1
		if i >= len(v.rows) {
			continue
		}
		r := v.rows[i]
		style := def
		switch r.Op {
		case linediff.Delete:
			style = th.GetStyle(theme.StyleDiffRemoved)
		case linediff.Insert:
			style = th.GetStyle(theme.StyleDiffAdded)
		}
		if r.HasLeft() {
			v.drawSide(screen, th, 0, y, pane, v.leftNums[i], r.Left, style)
		} else {
			fill(screen, 0, y, pane, th.GetStyle(theme.StyleDiffFiller))
		}
		if width > pane {
			screen.SetContent(pane, y, rune(r.Marker()[0]), nil, style)
		}
		if r.HasRight() {
			v.drawSide(screen, th, rightX, y, width-rightX, v.rightNums[i], r.Right, style)
		} else {
			fill(screen, rightX, y, width-rightX, th.GetStyle(theme.StyleDiffFiller))
		}
	}

	v.status.Draw(screen, width, height)
}

// drawSide draws a line number gutter and one side of a row.
func (v *DiffView) drawSide(screen tcell.Screen, th *theme.Theme, x, y, width, num int, text string, style tcell.Style) {
	gutter := v.gutter + 1
	if gutter >= width {
		gutter = 0
	} else {
		drawText(screen, x, y, gutter, formatLineNumber(num, v.gutter), th.GetStyle(theme.StyleLineNumber))
	}
	drawText(screen, x+gutter, y, width-gutter, text, style)
}

// HandleKey applies a key press and reports whether the view should close.
func (v *DiffView) HandleKey(ev *tcell.EventKey) (quit bool) {
	action := v.keys.ProcessEvent(ev)
	logger.DebugTagf("tui", "Key %s -> %s", ev.Name(), action)
	switch action {
	case input.ActionQuit:
		return true
	case input.ActionScrollUp:
		v.ScrollBy(-1)
	case input.ActionScrollDown:
		v.ScrollBy(1)
	case input.ActionPageUp:
		v.ScrollBy(-max(v.height, 1))
	case input.ActionPageDown:
		v.ScrollBy(max(v.height, 1))
	case input.ActionTop:
		v.ScrollTo(0)
	case input.ActionBottom:
		v.ScrollTo(len(v.rows))
	case input.ActionNextChange:
		if !v.NextChange() {
			v.status.SetTemporaryMessage("no more changes")
		}
	case input.ActionPrevChange:
		if !v.PrevChange() {
			v.status.SetTemporaryMessage("no earlier changes")
		}
	case input.ActionCycleTheme:
		v.cycleTheme()
	}
	return false
}

func (v *DiffView) cycleTheme() {
	names := v.themes.ListThemes()
	current := v.themes.Current().Name
	for i, name := range names {
		if name == current {
			next := names[(i+1)%len(names)]
			if err := v.themes.SetTheme(next); err != nil {
				logger.Warnf("DiffView: %v", err)
				return
			}
			v.status = v.withConfig(v.statusConfig())
			v.status.SetTemporaryMessage("theme: %s", next)
			return
		}
	}
}

// withConfig rebuilds the status line with new styles, keeping its content.
func (v *DiffView) withConfig(cfg statusbar.Config) *statusbar.StatusBar {
	sb := statusbar.New(cfg)
	sb.SetFileInfo(fmt.Sprintf("%s vs %s", v.leftName, v.rightName), false)
	sb.SetCursorInfo(types.Position{Line: v.top})
	sb.SetSummary(fmt.Sprintf("-%d +%d =%d", v.summary.Deleted, v.summary.Inserted, v.summary.Equal))
	return sb
}

// Run draws the view and handles input until the user quits or ctx ends.
func (v *DiffView) Run(ctx context.Context, t *TUI) error {
	screen := t.GetScreen()
	stop := context.AfterFunc(ctx, func() {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		v.Draw(screen)
		t.Show()

		switch ev := t.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			t.Sync()
			v.ScrollBy(0)
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		}
	}
}
