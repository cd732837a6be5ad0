package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/t2048/internal/core"
)

// DefaultBoardSize is the default board dimension.
const DefaultBoardSize = 4

var (
	// ErrInvalidSize is returned when a board is requested with a side below 1.
	ErrInvalidSize = errors.New("t2048: invalid board size")
	// ErrOutOfRange is returned when writing a cell outside the board.
	ErrOutOfRange = errors.New("t2048: position out of range")
	// ErrInvalidTile is returned for negative tile values.
	ErrInvalidTile = errors.New("t2048: invalid tile value")
)

// Position addresses a single cell, 0-indexed.
type Position struct {
	Row int
	Col int
}

// Board is an immutable square grid of tile values. 0 means empty.
// Methods never modify the receiver; anything that "changes" a board
// returns a new one, so boards may be shared freely.
type Board struct {
	size  int
	cells []int // row-major, len == size*size
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) (Board, error) {
	if size < 1 {
		return Board{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return Board{size: size, cells: make([]int, size*size)}, nil
}

// BoardFromRows builds a board from a square matrix of tile values.
func BoardFromRows(rows [][]int) (Board, error) {
	size := len(rows)
	b, err := NewBoard(size)
	if err != nil {
		return Board{}, err
	}
	for r, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), size)
		}
		for c, v := range row {
			if v < 0 {
				return Board{}, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
			b.cells[r*size+c] = v
		}
	}
	return b, nil
}

// MustBoardFromRows is like BoardFromRows but panics on error.
// Intended for fixed scenarios and tests.
func MustBoardFromRows(rows [][]int) Board {
	b, err := BoardFromRows(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the side length.
func (b Board) Size() int {
	return b.size
}

// InBounds reports whether pos addresses a cell of this board.
func (b Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.size && pos.Col >= 0 && pos.Col < b.size
}

// Get returns the value at pos, or 0 when pos is outside the board.
func (b Board) Get(pos Position) int {
	if !b.InBounds(pos) {
		return 0
	}
	return b.cells[pos.Row*b.size+pos.Col]
}

// at is the unchecked accessor used by the hot loops.
func (b Board) at(row, col int) int {
	return b.cells[row*b.size+col]
}

// Set returns a copy of the board with one cell replaced.
func (b Board) Set(pos Position, value int) (Board, error) {
	if !b.InBounds(pos) {
		return Board{}, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfRange, pos.Row, pos.Col, b.size, b.size)
	}
	if value < 0 {
		return Board{}, fmt.Errorf("%w: %d", ErrInvalidTile, value)
	}
	next := b.clone()
	next.cells[pos.Row*b.size+pos.Col] = value
	return next, nil
}

func (b Board) clone() Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Row returns a copy of row r.
func (b Board) Row(r int) []int {
	row := make([]int, b.size)
	copy(row, b.cells[r*b.size:(r+1)*b.size])
	return row
}

// Column returns a copy of column c, top to bottom.
func (b Board) Column(c int) []int {
	col := make([]int, b.size)
	for r := range b.size {
		col[r] = b.at(r, c)
	}
	return col
}

// Rows returns a deep copy of the grid.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range b.size {
		rows[r] = b.Row(r)
	}
	return rows
}

// fromRows assembles a board from rows the caller guarantees are square and owned.
func fromRows(rows [][]int) Board {
	size := len(rows)
	cells := make([]int, 0, size*size)
	for _, row := range rows {
		cells = append(cells, row...)
	}
	return Board{size: size, cells: cells}
}

// EmptyPositions returns every empty cell in row-major order.
func (b Board) EmptyPositions() []Position {
	var positions []Position
	for r := range b.size {
		for c := range b.size {
			if b.at(r, c) == 0 {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for _, v := range b.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// Equal reports structural equality. Boards of different sizes are unequal.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Contains reports whether any cell holds value.
func (b Board) Contains(value int) bool {
	for _, v := range b.cells {
		if v == value {
			return true
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	n := 0
	for _, v := range b.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// String renders the board as rows separated by '/', cells by ','.
// ParseBoard accepts the same format.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := range b.size {
			if c > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(b.at(r, c)))
		}
	}
	return sb.String()
}

// ParseBoard parses a board written as rows separated by '/' or newlines,
// with cells separated by commas or whitespace, e.g. "2,2,0,0/0,4,0,0/...".
func ParseBoard(s string) (Board, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", "/"))
	if s == "" {
		return Board{}, fmt.Errorf("%w: empty board", ErrInvalidSize)
	}

	var rows [][]int
	for _, line := range strings.Split(s, "/") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Board{}, fmt.Errorf("%w: %q", ErrInvalidTile, f)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return BoardFromRows(rows)
}

// RandomTileValue returns 2 with probability 0.9, otherwise 4.
func RandomTileValue(src core.RandomSource) int {
	if src.Float64() < 0.9 {
		return 2
	}
	return 4
}

// InitBoard returns an empty board with count random tiles placed on it.
// Each placement picks uniformly among the cells still empty at that point.
func InitBoard(size, count int, src core.RandomSource) (Board, error) {
	b, err := NewBoard(size)
	if err != nil {
		return Board{}, err
	}
	for range count {
		b = SpawnRandom(b, src)
	}
	return b, nil
}
