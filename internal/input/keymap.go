// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys (arrows, Esc, PgUp...) to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// ModKeymap maps keys combined with modifiers.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into actions.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionScrollUp
	p.keymap[tcell.KeyDown] = ActionScrollDown
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyHome] = ActionTop
	p.keymap[tcell.KeyEnd] = ActionBottom
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlN] = ActionNextChange
	ctrlMap[tcell.KeyCtrlP] = ActionPrevChange
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Rune Mappings (less style) ---
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['k'] = ActionScrollUp
	p.runeKeymap['j'] = ActionScrollDown
	p.runeKeymap['b'] = ActionPageUp
	p.runeKeymap[' '] = ActionPageDown
	p.runeKeymap['g'] = ActionTop
	p.runeKeymap['G'] = ActionBottom
	p.runeKeymap['n'] = ActionNextChange
	p.runeKeymap['p'] = ActionPrevChange
	p.runeKeymap['t'] = ActionCycleTheme
}

// ProcessEvent returns the action bound to ev, or ActionUnknown.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) Action {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Modifier + key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return action
		}
	}
	// Ctrl+letter keys carry the modifier in the key itself
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return action
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Simple keys, Shift allowed
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}

	// 3. Plain runes
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return action
		}
	}
	return ActionUnknown
}
