package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotcraft/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true

	case "up", "k":
		return core.ActionCursorUp, false
	case "down", "j":
		return core.ActionCursorDown, false
	case "left", "h":
		return core.ActionCursorLeft, false
	case "right", "l":
		return core.ActionCursorRight, false

	case "shift+up", "K":
		return core.ActionRotateUp, false
	case "shift+down", "J":
		return core.ActionRotateDown, false
	case "shift+left", "H":
		return core.ActionRotateLeft, false
	case "shift+right", "L":
		return core.ActionRotateRight, false

	case "r":
		return core.ActionRestart, false
	case "[":
		return core.ActionPrevLevel, false
	case "]":
		return core.ActionNextLevel, false
	case "tab":
		return core.ActionRecords, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionRecords
	MenuActionBack
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
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionRecords
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
