package history

import (
	"testing"

	"github.com/SEPLEMBER/Oxy-test/internal/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// newTracked returns a text whose every edit is recorded by a new manager.
func newTracked(content string, maxSize int) (*buffer.Text, *Manager) {
	txt := buffer.New(content)
	m := NewManager(txt, maxSize)
	txt.Subscribe(m)
	return txt, m
}

func TestNewManager(t *testing.T) {
	_, m := newTracked("", DefaultMaxHistory)

	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 0, m.Position())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, DefaultMaxHistory, m.MaxSize())
}

func TestManager_UndoRedo(t *testing.T) {
	txt, m := newTracked("hello", DefaultMaxHistory)

	require.NoError(t, txt.Insert(5, " world"))
	require.NoError(t, txt.Replace(0, 5, "HELLO"))
	assert.Equal(t, 2, m.Position())

	ok, err := m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello world", txt.String())
	assert.Equal(t, 5, txt.Caret())

	ok, err = m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", txt.String())
	assert.Equal(t, 5, txt.Caret(), "caret at start when the restored text is empty")

	ok, err = m.Undo()
	require.NoError(t, err)
	assert.False(t, ok, "undo at the start is inert")

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello world", txt.String())
	assert.Equal(t, 11, txt.Caret())

	// Replays are not recorded as new history
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Position())
}

func TestManager_UndoDropsDecorations(t *testing.T) {
	txt, m := newTracked("abc", 10)
	require.NoError(t, txt.Insert(3, "d"))
	txt.AddDecoration(buffer.Decoration{Start: 0, End: 2, Kind: buffer.DecorationUnderline})

	_, err := m.Undo()
	require.NoError(t, err)
	assert.Empty(t, txt.Decorations())
}

func TestManager_NewEditAfterUndoPrunesRedo(t *testing.T) {
	txt, m := newTracked("", DefaultMaxHistory)
	require.NoError(t, txt.Insert(0, "a")) // E1
	require.NoError(t, txt.Insert(1, "b")) // E2
	require.NoError(t, txt.Insert(2, "c")) // E3

	_, err := m.Undo()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Position())

	require.NoError(t, txt.Insert(2, "d")) // E4

	assert.False(t, m.CanRedo())
	assert.Equal(t, []EditItem{
		{Start: 0, Before: "", After: "a"},
		{Start: 1, Before: "", After: "b"},
		{Start: 2, Before: "", After: "d"},
	}, m.Items())
}

func TestManager_TrimsOldest(t *testing.T) {
	txt, m := newTracked("", 2)
	for i, s := range []string{"a", "b", "c"} {
		require.NoError(t, txt.Insert(i, s))
	}

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, m.Position())
	assert.Equal(t, "b", m.Items()[0].After)

	m.SetMaxSize(0)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Position())
	assert.False(t, m.CanUndo())
}

func TestManager_TrimKeepsPositionAtZero(t *testing.T) {
	txt, m := newTracked("", 3)
	for i, s := range []string{"a", "b", "c"} {
		require.NoError(t, txt.Insert(i, s))
	}
	for m.CanUndo() {
		_, err := m.Undo()
		require.NoError(t, err)
	}

	m.SetMaxSize(1)
	assert.Equal(t, 0, m.Position())
	assert.Equal(t, 1, m.Len())
}

func TestManager_Unbounded(t *testing.T) {
	txt, m := newTracked("", Unbounded)
	for i := 0; i < 500; i++ {
		require.NoError(t, txt.Insert(i, "x"))
	}
	assert.Equal(t, 500, m.Len())
}

func TestManager_StaleItem(t *testing.T) {
	txt := buffer.New("abcdef")
	m := NewManager(txt, 10)
	m.RecordChange(4, "", "ef") // recorded against text the buffer no longer matches
	txt.Reset("ab")

	ok, err := m.Undo()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 1, m.Position())
}

func TestManager_Clear(t *testing.T) {
	txt, m := newTracked("", 10)
	require.NoError(t, txt.Insert(0, "x"))
	m.Clear()
	assert.False(t, m.CanUndo())
	assert.Equal(t, 0, m.Len())
}

type edit struct {
	start, end int
	text       string
}

func drawEdit(t *rapid.T, length int, label string) edit {
	start := rapid.IntRange(0, length).Draw(t, label+"_start")
	end := rapid.IntRange(start, length).Draw(t, label+"_end")
	text := rapid.StringMatching(`[a-zé ]{0,4}`).Draw(t, label+"_text")
	return edit{start, end, text}
}

func TestManager_UndoRedoSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.StringMatching(`[a-zé\n ]{0,20}`).Draw(t, "initial")
		txt, m := newTracked(initial, Unbounded)

		n := rapid.IntRange(1, 20).Draw(t, "edits")
		for i := 0; i < n; i++ {
			e := drawEdit(t, txt.Len(), "edit")
			if err := txt.Replace(e.start, e.end, e.text); err != nil {
				t.Fatalf("replace: %v", err)
			}
		}
		final := txt.String()
		applied := m.Position()

		for i := 0; i < applied; i++ {
			if ok, err := m.Undo(); !ok || err != nil {
				t.Fatalf("undo %d: ok=%v err=%v", i, ok, err)
			}
		}
		if txt.String() != initial {
			t.Fatalf("after undo got %q, want %q", txt.String(), initial)
		}
		if m.CanUndo() || !m.CanRedo() && applied > 0 {
			t.Fatalf("bad gating at start: canUndo=%v canRedo=%v", m.CanUndo(), m.CanRedo())
		}

		for i := 0; i < applied; i++ {
			if ok, err := m.Redo(); !ok || err != nil {
				t.Fatalf("redo %d: ok=%v err=%v", i, ok, err)
			}
		}
		if txt.String() != final {
			t.Fatalf("after redo got %q, want %q", txt.String(), final)
		}
		if m.CanRedo() {
			t.Fatal("redo still available at the end")
		}
	})
}
