package buffer

import (
	"testing"

	"github.com/SEPLEMBER/Oxy-test/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestText_ReplaceNotifies(t *testing.T) {
	txt := New("hello world")
	var got []Delta
	txt.Subscribe(ListenerFunc(func(d Delta) { got = append(got, d) }))

	require.NoError(t, txt.Replace(6, 11, "gopher"))
	assert.Equal(t, "hello gopher", txt.String())
	assert.True(t, txt.IsModified())
	assert.Equal(t, []Delta{{Start: 6, Before: "world", After: "gopher"}}, got)

	// Same content is not an edit
	require.NoError(t, txt.Replace(0, 5, "hello"))
	assert.Len(t, got, 1)
}

func TestText_ReplaceOutOfRange(t *testing.T) {
	txt := New("abc")
	assert.ErrorIs(t, txt.Replace(2, 5, "x"), ErrOutOfRange)
	assert.ErrorIs(t, txt.Replace(-1, 1, "x"), ErrOutOfRange)
	assert.ErrorIs(t, txt.Replace(2, 1, "x"), ErrOutOfRange)
	assert.Equal(t, "abc", txt.String())
}

func TestText_RuneOffsets(t *testing.T) {
	txt := New("дом кот")
	require.NoError(t, txt.Replace(4, 7, "пёс"))
	assert.Equal(t, "дом пёс", txt.String())
	assert.Equal(t, 7, txt.Len())
	assert.Equal(t, 13, txt.ByteLen())
}

func TestText_CaretFollowsEdits(t *testing.T) {
	txt := New("abcdef")
	txt.SetCaret(5)
	require.NoError(t, txt.Insert(1, "XX"))
	assert.Equal(t, 7, txt.Caret())

	txt.SetCaret(3)
	require.NoError(t, txt.Replace(2, 5, "y"))
	assert.Equal(t, 3, txt.Caret())

	txt.SetCaret(100)
	assert.Equal(t, txt.Len(), txt.Caret())
}

func TestText_Selection(t *testing.T) {
	txt := New("abcdef")
	_, ok := txt.Selection()
	assert.False(t, ok)

	txt.Select(4, 1)
	r, ok := txt.Selection()
	require.True(t, ok)
	assert.Equal(t, types.Range{Start: 1, End: 4}, r)

	require.NoError(t, txt.Insert(0, "z"))
	_, ok = txt.Selection()
	assert.False(t, ok)
}

func TestText_Decorations(t *testing.T) {
	txt := New("abc")
	txt.AddDecoration(Decoration{Start: 0, End: 1, Kind: DecorationUnderline})
	txt.AddDecoration(Decoration{Start: 1, End: 2, Kind: DecorationMatch})

	txt.ClearDecorationsOf(DecorationMatch)
	assert.Len(t, txt.Decorations(), 1)

	txt.ClearDecorations()
	assert.Empty(t, txt.Decorations())
}

func TestText_PositionOf(t *testing.T) {
	txt := New("ab\r\ncd\ref\ngh")
	assert.Equal(t, types.Position{Line: 0, Col: 0}, txt.PositionOf(0))
	assert.Equal(t, types.Position{Line: 1, Col: 0}, txt.PositionOf(4))
	assert.Equal(t, types.Position{Line: 1, Col: 1}, txt.PositionOf(5))
	assert.Equal(t, types.Position{Line: 2, Col: 0}, txt.PositionOf(7))
	assert.Equal(t, types.Position{Line: 3, Col: 2}, txt.PositionOf(12))
	assert.Equal(t, "4:3", txt.PositionOf(12).String())
}

func TestText_PositionsOf(t *testing.T) {
	txt := New("ab\r\ncd\ref\ngh")
	got := txt.PositionsOf([]int{0, 3, 4, 5, 12, 2})
	assert.Equal(t, []types.Position{
		{Line: 0, Col: 0},
		{Line: 0, Col: 3}, // between '\r' and '\n'
		{Line: 1, Col: 0},
		{Line: 1, Col: 1},
		{Line: 3, Col: 2},
		{Line: 0, Col: 2},
	}, got)
}

func TestText_PositionsOfMatchesPositionOf(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		txt := New(rapid.StringOfN(rapid.SampledFrom([]rune("ab\r\n")), 0, 30, -1).Draw(t, "text"))
		offsets := rapid.SliceOf(rapid.IntRange(-1, txt.Len()+1)).Draw(t, "offsets")
		got := txt.PositionsOf(offsets)
		for i, off := range offsets {
			if got[i] != txt.PositionOf(off) {
				t.Fatalf("offset %d: got %v, want %v", off, got[i], txt.PositionOf(off))
			}
		}
	})
}

func TestText_OffsetOf(t *testing.T) {
	txt := New("ab\r\ncd\ref\ngh")
	for _, off := range []int{0, 1, 2, 4, 5, 6, 7, 8, 10, 11, 12} {
		assert.Equal(t, off, txt.OffsetOf(txt.PositionOf(off)), "offset %d", off)
	}
	assert.Equal(t, 2, txt.OffsetOf(types.Position{Line: 0, Col: 40}))
	assert.Equal(t, 12, txt.OffsetOf(types.Position{Line: 9, Col: 0}))
	assert.Equal(t, 0, txt.OffsetOf(types.Position{Line: -1, Col: 3}))
}
