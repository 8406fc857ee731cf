// internal/input/action.go
package input

// Action is an operation of the diff viewer.
type Action int

const (
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- Scrolling ---
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom

	// --- Navigation ---
	ActionNextChange
	ActionPrevChange

	// --- Other ---
	ActionCycleTheme
)

var actionNames = map[Action]string{
	ActionQuit:       "quit",
	ActionScrollUp:   "scroll_up",
	ActionScrollDown: "scroll_down",
	ActionPageUp:     "page_up",
	ActionPageDown:   "page_down",
	ActionTop:        "top",
	ActionBottom:     "bottom",
	ActionNextChange: "next_change",
	ActionPrevChange: "prev_change",
	ActionCycleTheme: "cycle_theme",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
