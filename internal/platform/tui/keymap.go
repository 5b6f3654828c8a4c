package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pyjump/internal/core"
)

// holdTicks is how long a movement key counts as held after its last key
// event. Terminals report repeats, not releases, so a held key is a stream of
// presses with gaps between them.
const holdTicks = 9

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to actions.
// A key may carry both a gameplay and a menu meaning (up jumps and moves the
// outcome cursor). Returns whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case "a", "left":
		return []core.Action{core.ActionLeft}, false
	case "d", "right":
		return []core.Action{core.ActionRight}, false
	case "w", "up":
		return []core.Action{core.ActionJump, core.ActionUp}, false
	case " ":
		return []core.Action{core.ActionJump}, false
	case "s", "down":
		return []core.Action{core.ActionDown}, false
	case "e":
		return []core.Action{core.ActionActivate}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	}
	return nil, false
}

// MapKeyToLatch records a key message into the input latch.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToLatch(msg tea.KeyMsg, latch *InputLatch) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		latch.Press(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// InputLatch turns key events into per-tick input frames. Movement keys stay
// held for holdTicks after their last event; everything else lasts one tick.
type InputLatch struct {
	held    map[core.Action]int
	pressed core.InputFrame
}

// NewInputLatch creates an empty latch.
func NewInputLatch() *InputLatch {
	return &InputLatch{
		held:    make(map[core.Action]int),
		pressed: core.NewInputFrame(),
	}
}

func held(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// Press records a key event. Pressing one direction releases the other.
func (l *InputLatch) Press(a core.Action) {
	l.pressed.Set(a)
	if !held(a) {
		return
	}
	delete(l.held, core.ActionLeft)
	delete(l.held, core.ActionRight)
	l.held[a] = holdTicks
}

// Frame returns the input for the next tick and ages the latch.
func (l *InputLatch) Frame() core.InputFrame {
	frame := l.pressed.Clone()
	for a, n := range l.held {
		frame.Set(a)
		if n <= 1 {
			delete(l.held, a)
		} else {
			l.held[a] = n - 1
		}
	}
	l.pressed.Clear()
	return frame
}

// Release drops everything, e.g. when a screen changes.
func (l *InputLatch) Release() {
	clear(l.held)
	l.pressed.Clear()
}
