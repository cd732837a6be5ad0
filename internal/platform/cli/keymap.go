package cli

import (
	"strings"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// KeyMapper translates typed input lines to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates one input line to an action.
// Unrecognized input maps to ActionNone.
func (km *KeyMapper) MapKey(input string) core.Action {
	key := strings.ToLower(strings.TrimSpace(input))

	switch key {
	case "q", "quit", "exit":
		return core.ActionQuit
	}

	switch key {
	case "w", "k", "up":
		return core.ActionUp
	case "s", "j", "down":
		return core.ActionDown
	case "a", "left":
		return core.ActionLeft
	case "d", "l", "right":
		return core.ActionRight
	case "u", "undo":
		return core.ActionUndo
	case "h", "?", "hint":
		return core.ActionHint
	case "c", "continue":
		return core.ActionContinue
	case "r", "restart", "new":
		return core.ActionRestart
	case "help":
		return core.ActionHelp
	}

	return core.ActionNone
}

// Direction returns the move direction for a move action.
func Direction(a core.Action) (t2048.Direction, bool) {
	switch a {
	case core.ActionUp:
		return t2048.DirUp, true
	case core.ActionDown:
		return t2048.DirDown, true
	case core.ActionLeft:
		return t2048.DirLeft, true
	case core.ActionRight:
		return t2048.DirRight, true
	}
	return 0, false
}
