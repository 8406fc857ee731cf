package highlight

import (
	"testing"

	"github.com/SEPLEMBER/Oxy-test/internal/buffer"
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/stretchr/testify/assert"
)

func TestManager_ShowAndClear(t *testing.T) {
	txt := buffer.New("one two one two")
	txt.AddDecoration(buffer.Decoration{Start: 0, End: 3, Kind: buffer.DecorationUnderline})
	m := NewManager(txt)

	m.Show([]find.Span{{Start: 0, End: 3}, {Start: 8, End: 11}}, 1)
	assert.Equal(t, []buffer.Decoration{
		{Start: 0, End: 3, Kind: buffer.DecorationUnderline},
		{Start: 0, End: 3, Kind: buffer.DecorationMatch},
		{Start: 8, End: 11, Kind: buffer.DecorationCurrentMatch},
	}, txt.Decorations())

	m.Show([]find.Span{{Start: 4, End: 7}}, -1)
	assert.Len(t, txt.Decorations(), 2)

	m.Clear()
	assert.Equal(t, []buffer.Decoration{{Start: 0, End: 3, Kind: buffer.DecorationUnderline}}, txt.Decorations())
}
