package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreMatchingText(t *testing.T) {
	txt, m := newTracked("one", 50)
	require.NoError(t, txt.Insert(3, " two"))
	require.NoError(t, txt.Insert(7, " three"))
	_, err := m.Undo()
	require.NoError(t, err)

	snap := m.Snapshot(txt.String())
	assert.Equal(t, 1, snap.Position)
	assert.Equal(t, 50, snap.MaxHistorySize)

	// A fresh editor on the same text picks the history up
	txt2, m2 := newTracked(txt.String(), DefaultMaxHistory)
	require.True(t, m2.Restore(snap, txt2.String()))
	assert.Equal(t, 50, m2.MaxSize())
	assert.True(t, m2.CanRedo())

	_, err = m2.Redo()
	require.NoError(t, err)
	assert.Equal(t, "one two three", txt2.String())
	_, err = m2.Undo()
	require.NoError(t, err)
	_, err = m2.Undo()
	require.NoError(t, err)
	assert.Equal(t, "one", txt2.String())
}

func TestSnapshot_StaleIsDiscarded(t *testing.T) {
	txt, m := newTracked("draft", 10)
	require.NoError(t, txt.Insert(5, "!"))
	snap := m.Snapshot(txt.String())

	_, m2 := newTracked("draft!?", 10)
	m2.RecordChange(0, "", "x")
	assert.False(t, m2.Restore(snap, "draft!?"))
	assert.Equal(t, 0, m2.Len())
	assert.False(t, m2.CanUndo())
}

func TestSnapshot_BadPosition(t *testing.T) {
	_, m := newTracked("x", 10)
	snap := Snapshot{ContentHash: ContentHash("x"), MaxHistorySize: 10, Position: 3}
	assert.False(t, m.Restore(snap, "x"))
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash("a"), ContentHash("a"))
	assert.NotEqual(t, ContentHash("a"), ContentHash("b"))
	assert.Len(t, ContentHash(""), 64)
}
