package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/core/linediff"
	"github.com/SEPLEMBER/Oxy-test/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func pad(s string, n int) string {
	return s + strings.Repeat(" ", n-len(s))
}

func TestDiffView_Draw(t *testing.T) {
	s := newScreen(t, 41, 7)
	rows := linediff.DiffText("a\nb\nc", "a\nB\nc")
	v := NewDiffView("left.txt", "right.txt", rows, theme.NewManager(""))
	v.Draw(s)

	assert.Equal(t, pad("left.txt", 21)+"right.txt", rowText(s, 0))
	assert.Equal(t, pad("1 a", 20)+"="+"1 a", rowText(s, 1))
	assert.Equal(t, pad("2 b", 20)+"<", rowText(s, 2))
	assert.Equal(t, pad("", 20)+">"+"2 B", rowText(s, 3))
	assert.Equal(t, pad("3 c", 20)+"="+"3 c", rowText(s, 4))
	assert.Equal(t, "", rowText(s, 5))
	assert.Equal(t, "left.txt vs right.txt -- 1:1 -- -1 +1 =2", rowText(s, 6))

	th := theme.Dark
	_, _, style, _ := s.GetContent(2, 2)
	assert.Equal(t, th.GetStyle(theme.StyleDiffRemoved), style)
	_, _, style, _ = s.GetContent(23, 3)
	assert.Equal(t, th.GetStyle(theme.StyleDiffAdded), style)
	_, _, style, _ = s.GetContent(0, 1)
	assert.Equal(t, th.GetStyle(theme.StyleLineNumber), style)
}

func TestDiffView_TruncatesAndExpandsTabs(t *testing.T) {
	s := newScreen(t, 21, 4)
	rows := linediff.Diff([]string{"abcdefghijklmnop"}, []string{"\tx"})
	v := NewDiffView("l", "r", rows, theme.NewManager(""))
	v.Draw(s)

	// Pane width 10, gutter 2
	assert.Equal(t, "1 abcdefgh<", rowText(s, 1))
	assert.Equal(t, pad("", 10)+">1     x", rowText(s, 2))
}

func manyRows(n int) []linediff.Row {
	var a, b []string
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("line %d", i)
		a = append(a, line)
		if i%10 == 5 {
			line += " changed"
		}
		b = append(b, line)
	}
	return linediff.Diff(a, b)
}

func TestDiffView_Scroll(t *testing.T) {
	s := newScreen(t, 60, 12)
	rows := manyRows(30)
	v := NewDiffView("a", "b", rows, theme.NewManager(""))
	v.Draw(s)
	require.Len(t, rows, 33)

	v.ScrollBy(-5)
	assert.Equal(t, 0, v.Top())
	v.ScrollBy(3)
	assert.Equal(t, 3, v.Top())
	v.ScrollTo(1000)
	assert.Equal(t, 33-10, v.Top())

	v.ScrollTo(0)
	require.True(t, v.NextChange())
	assert.Equal(t, 5, v.Top())
	require.True(t, v.NextChange())
	assert.Equal(t, 16, v.Top())
	require.True(t, v.PrevChange())
	assert.Equal(t, 5, v.Top())
	assert.False(t, v.PrevChange())

	v.Draw(s)
	assert.Contains(t, rowText(s, 1), "line 5")
	assert.Contains(t, rowText(s, 11), "6:1")
}

func TestDiffView_Keys(t *testing.T) {
	s := newScreen(t, 60, 12)
	themes := theme.NewManager("")
	v := NewDiffView("a", "b", manyRows(30), themes)
	v.Draw(s)

	key := func(k tcell.Key, r rune) bool {
		return v.HandleKey(tcell.NewEventKey(k, r, tcell.ModNone))
	}
	assert.False(t, key(tcell.KeyDown, 0))
	assert.False(t, key(tcell.KeyRune, 'j'))
	assert.Equal(t, 2, v.Top())
	assert.False(t, key(tcell.KeyPgDn, 0))
	assert.Equal(t, 12, v.Top())
	assert.False(t, key(tcell.KeyRune, 'g'))
	assert.Equal(t, 0, v.Top())
	assert.False(t, key(tcell.KeyEnd, 0))
	assert.Equal(t, 23, v.Top())

	// The last change is already on screen
	assert.False(t, key(tcell.KeyRune, 'n'))
	text, _ := v.Status().Text()
	assert.Equal(t, "no more changes", text)

	assert.False(t, key(tcell.KeyRune, 't'))
	assert.Equal(t, "light", themes.Current().Name)

	assert.True(t, key(tcell.KeyRune, 'q'))
	assert.True(t, key(tcell.KeyEscape, 0))
}

func TestDiffView_Run(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, &theme.Dark)
	require.NoError(t, err)
	defer ui.Close()
	s.SetSize(40, 6)

	v := NewDiffView("a", "b", linediff.DiffText("x", "y"), theme.NewManager(""))
	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background(), ui) }()
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("view did not quit")
	}
}

func TestDiffView_RunCancelled(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(s, nil)
	require.NoError(t, err)
	defer ui.Close()

	ctx, cancel := context.WithCancel(context.Background())
	v := NewDiffView("a", "b", linediff.DiffText("x", "x"), theme.NewManager(""))
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx, ui) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("view ignored cancellation")
	}
}
