package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

// Declaration order is also the tie-break order used by BestMove.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four directions in enumeration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the upper-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection accepts direction names case-insensitively ("up", "LEFT")
// and their single-letter forms (u, d, l, r).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// MoveResult is the outcome of attempting one directional move.
// When Changed is false, Board equals the input and Score is 0.
type MoveResult struct {
	Board   Board
	Score   int
	Changed bool
}

// slideRows applies merge to every row and assembles the result.
func slideRows(board Board, merge func([]int) MergeResult) MoveResult {
	rows := make([][]int, board.size)
	totalScore := 0

	for r := range board.size {
		res := merge(board.Row(r))
		rows[r] = res.Line
		totalScore += res.Score
	}

	next := fromRows(rows)
	// Whole-board comparison: per-line flags are not trusted.
	if next.Equal(board) {
		return MoveResult{Board: board}
	}
	return MoveResult{Board: next, Score: totalScore, Changed: true}
}

// MoveLeft slides all tiles left and merges.
func MoveLeft(board Board) MoveResult {
	return slideRows(board, MergeLine)
}

// MoveRight slides all tiles right and merges.
func MoveRight(board Board) MoveResult {
	return slideRows(board, MergeLineRight)
}

// MoveUp slides all tiles up and merges.
func MoveUp(board Board) MoveResult {
	// Transpose, slide left, transpose back
	res := MoveLeft(Transpose(board))
	if !res.Changed {
		return MoveResult{Board: board}
	}
	res.Board = Transpose(res.Board)
	return res
}

// MoveDown slides all tiles down and merges.
func MoveDown(board Board) MoveResult {
	// Transpose, slide right, transpose back
	res := MoveRight(Transpose(board))
	if !res.Changed {
		return MoveResult{Board: board}
	}
	res.Board = Transpose(res.Board)
	return res
}

// Transpose returns the matrix transpose. Applying it twice yields the input.
func Transpose(board Board) Board {
	result := Board{size: board.size, cells: make([]int, len(board.cells))}
	for r := range board.size {
		for c := range board.size {
			result.cells[r*board.size+c] = board.at(c, r)
		}
	}
	return result
}

// Move performs a move in the given direction.
// An unknown direction leaves the board unchanged.
func Move(board Board, dir Direction) MoveResult {
	switch dir {
	case DirLeft:
		return MoveLeft(board)
	case DirRight:
		return MoveRight(board)
	case DirUp:
		return MoveUp(board)
	case DirDown:
		return MoveDown(board)
	default:
		return MoveResult{Board: board}
	}
}

// CanMoveInDirection reports whether moving in dir would change the board.
func CanMoveInDirection(board Board, dir Direction) bool {
	return Move(board, dir).Changed
}

// CanMove returns true if any direction changes the board.
func CanMove(board Board) bool {
	for _, dir := range Directions {
		if CanMoveInDirection(board, dir) {
			return true
		}
	}
	return false
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}

// IsGameWon reports whether the target tile is on the board.
func IsGameWon(board Board, target int) bool {
	return board.Contains(target)
}
