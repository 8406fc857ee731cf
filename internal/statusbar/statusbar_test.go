package statusbar

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Counts
	}{
		{"empty", "", Counts{Lines: 1}},
		{"one line", "hello world", Counts{Lines: 1, Words: 2, Chars: 11}},
		{"mixed endings", "a\r\nb\rc\n", Counts{Lines: 4, Words: 3, Chars: 6}},
		{"extra whitespace", "  one\t\ttwo   three \n", Counts{Lines: 2, Words: 3, Chars: 20}},
		{"cyrillic", "привет мир", Counts{Lines: 1, Words: 2, Chars: 10}},
		{"combining mark", "e\u0301te\u0301", Counts{Lines: 1, Words: 1, Chars: 3}},
		{"flag emoji", "🇺🇦!", Counts{Lines: 1, Words: 1, Chars: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.text))
		})
	}
}

func TestMatchIndicator(t *testing.T) {
	assert.Equal(t, "match 1/3", MatchIndicator(0, 3))
	assert.Equal(t, "match 3/3", MatchIndicator(2, 3))
	assert.Empty(t, MatchIndicator(0, 0))
	assert.Empty(t, MatchIndicator(-1, 2))
	assert.Empty(t, MatchIndicator(5, 2))
}

func TestSummary(t *testing.T) {
	c := Counts{Lines: 3, Words: 7, Chars: 40}
	assert.Equal(t, "Lines: 3, Words: 7, Chars: 40", Summary(c, -1, 0))
	assert.Equal(t, "Lines: 3, Words: 7, Chars: 40, match 2/5", Summary(c, 1, 5))
}

func TestAggregator_DebouncesRecount(t *testing.T) {
	published := make(chan string, 10)
	a := NewAggregator(10*time.Millisecond, func(s string) { published <- s })
	defer a.Stop()

	var text atomic.Value
	text.Store("draft")
	for i := 0; i < 5; i++ {
		a.TextChanged(func() string { return text.Load().(string) })
	}
	text.Store("final text here")

	select {
	case s := <-published:
		assert.Equal(t, "Lines: 1, Words: 3, Chars: 15", s)
	case <-time.After(2 * time.Second):
		t.Fatal("no summary published")
	}
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, published, "a burst yields a single recount")
}

func TestAggregator_MatchesAndFlush(t *testing.T) {
	var last string
	a := NewAggregator(time.Hour, func(s string) { last = s })

	a.TextChanged(func() string { return "never counted" })
	assert.Equal(t, "Lines: 2, Words: 2, Chars: 7", a.Flush("one\ntwo"))
	assert.Equal(t, last, a.Summary())

	a.MatchesChanged(0, 2)
	assert.Equal(t, "Lines: 2, Words: 2, Chars: 7, match 1/2", last)

	a.MatchesChanged(0, 0)
	assert.Equal(t, "Lines: 2, Words: 2, Chars: 7", last)
}

func TestStatusBar_Text(t *testing.T) {
	cfg := DefaultConfig()
	sb := New(cfg)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return now }

	text, style := sb.Text()
	assert.Equal(t, "[No Name] -- 1:1", text)
	assert.Equal(t, cfg.StyleDefault, style)

	sb.SetFileInfo("notes.txt", true)
	sb.SetCursorInfo(types.Position{Line: 4, Col: 2})
	sb.SetSummary("Lines: 9, Words: 20, Chars: 80")
	text, style = sb.Text()
	assert.Equal(t, "notes.txt [Modified] -- 5:3 -- Lines: 9, Words: 20, Chars: 80", text)
	assert.Equal(t, cfg.StyleModified, style)

	sb.SetTemporaryMessage("Saved %d bytes", 12)
	text, style = sb.Text()
	assert.Equal(t, "Saved 12 bytes", text)
	assert.Equal(t, cfg.StyleMessage, style)

	now = now.Add(cfg.MessageTimeout + time.Second)
	text, _ = sb.Text()
	assert.True(t, strings.HasPrefix(text, "notes.txt"))
}

func TestStatusBar_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(12, 3)

	sb := New(DefaultConfig())
	sb.SetFileInfo("a-very-long-file-name.txt", false)
	sb.Draw(screen, 12, 3)
	screen.Show()

	cells, width, _ := screen.GetContents()
	var row strings.Builder
	for x := 0; x < width; x++ {
		c := cells[2*width+x]
		if len(c.Runes) > 0 {
			row.WriteRune(c.Runes[0])
		}
	}
	assert.Equal(t, "a-very-long-", row.String())
}
