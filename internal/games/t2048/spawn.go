package t2048

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/t2048/internal/core"
)

// ErrInvalidSpawnValue is returned by SpawnAt for values other than 2 or 4.
var ErrInvalidSpawnValue = errors.New("t2048: spawn value must be 2 or 4")

// SpawnRandom places a new tile (2 or 4) in a random empty cell.
// A full board is returned unchanged.
func SpawnRandom(board Board, src core.RandomSource) Board {
	empty := board.EmptyPositions()
	if len(empty) == 0 {
		return board
	}

	// Pick random empty cell, then its value
	pos := empty[core.PickIndex(src, len(empty))]
	value := RandomTileValue(src)

	next, _ := board.Set(pos, value) // pos comes from the board itself
	return next
}

// SpawnAt places a 2 or 4 at pos deterministically.
func SpawnAt(board Board, pos Position, value int) (Board, error) {
	if value != 2 && value != 4 {
		return Board{}, fmt.Errorf("%w: got %d", ErrInvalidSpawnValue, value)
	}
	return board.Set(pos, value)
}
