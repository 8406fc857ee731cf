package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_OrderAndConsume(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "third")
		return false
	})
	m.Subscribe(TypeBufferLoaded, func(e Event) bool {
		got = append(got, "loaded")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})
	assert.Equal(t, []string{"first:a.txt", "second"}, got)

	m.Dispatch(TypeJobFinished, nil)
	assert.Len(t, got, 2)
}

func TestDispatch_SubscribeFromHandler(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeStatusChanged, func(e Event) bool {
		calls++
		m.Subscribe(TypeStatusChanged, func(Event) bool { calls++; return false })
		return false
	})

	m.Dispatch(TypeStatusChanged, StatusChangedData{})
	assert.Equal(t, 1, calls)
	m.Dispatch(TypeStatusChanged, StatusChangedData{})
	assert.Equal(t, 3, calls)
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "MatchesChanged", TypeMatchesChanged.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
