package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionCursorUp           // Up arrow, k
	ActionCursorDown         // Down arrow, j
	ActionCursorLeft         // Left arrow, h
	ActionCursorRight        // Right arrow, l
	ActionRotateUp           // Shift+Up, K - rotate cursor column toward row 0
	ActionRotateDown         // Shift+Down, J
	ActionRotateLeft         // Shift+Left, H - rotate cursor row toward column 0
	ActionRotateRight        // Shift+Right, L
	ActionRestart            // R - new board, same level
	ActionPrevLevel          // [
	ActionNextLevel          // ]
	ActionRecords            // Tab - records panel
	ActionBack               // B, Escape
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionRotateUp:
		return "RotateUp"
	case ActionRotateDown:
		return "RotateDown"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionRestart:
		return "Restart"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionNextLevel:
		return "NextLevel"
	case ActionRecords:
		return "Records"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
