package core

// Action represents a semantic player action, abstracted from what was typed.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, k, "up"
	ActionDown            // S, j, "down"
	ActionLeft            // A, "left"
	ActionRight           // D, l, "right"
	ActionUndo            // U
	ActionHint            // H, "?"
	ActionContinue        // C - keep playing after a win
	ActionRestart         // R
	ActionQuit            // Q, "exit"
	ActionHelp            // "help"
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionHint:
		return "Hint"
	case ActionContinue:
		return "Continue"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action slides the board.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
