package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestInputProcessor_ProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want Action
	}{
		{"arrow", tcell.KeyDown, 0, tcell.ModNone, ActionScrollDown},
		{"shift arrow", tcell.KeyUp, 0, tcell.ModShift, ActionScrollUp},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, ActionQuit},
		{"ctrl-c", tcell.KeyCtrlC, 0, tcell.ModCtrl, ActionQuit},
		{"ctrl-n", tcell.KeyCtrlN, 0, tcell.ModCtrl, ActionNextChange},
		{"rune", tcell.KeyRune, 'n', tcell.ModNone, ActionNextChange},
		{"upper rune", tcell.KeyRune, 'G', tcell.ModNone, ActionBottom},
		{"unbound rune", tcell.KeyRune, 'x', tcell.ModNone, ActionUnknown},
		{"alt rune", tcell.KeyRune, 'q', tcell.ModAlt, ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "next_change", ActionNextChange.String())
	assert.Equal(t, "unknown", Action(99).String())
}
