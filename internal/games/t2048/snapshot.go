package t2048

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Status summarizes a state for display.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusWon      Status = "won"
	StatusGameOver Status = "game_over"
)

// StatusOf returns the display status of s. Over takes precedence over Won.
func StatusOf(s State) Status {
	switch {
	case s.Over:
		return StatusGameOver
	case s.Won:
		return StatusWon
	default:
		return StatusPlaying
	}
}

// ErrMalformedSnapshot is returned when a persisted game cannot be adopted.
var ErrMalformedSnapshot = errors.New("t2048: malformed snapshot")

// savedGame is the persisted JSON form of a State. History is never stored.
type savedGame struct {
	Board             [][]int `json:"board"`
	Score             *int    `json:"score"`
	BestScore         int     `json:"bestScore"`
	Won               bool    `json:"won"`
	Over              bool    `json:"over"`
	Size              int     `json:"size"`
	HasSeenWinMessage bool    `json:"hasSeenWinMessage"`
	MoveCount         int     `json:"moveCount"`
	StartTime         int64   `json:"startTime"` // unix milliseconds
	Combo             int     `json:"combo"`
	WinningTile       int     `json:"winningTile,omitempty"`
}

// EncodeSnapshot serializes s for persistence, dropping its history.
func EncodeSnapshot(s State) ([]byte, error) {
	score := s.Score
	return json.Marshal(savedGame{
		Board:             s.Board.Rows(),
		Score:             &score,
		BestScore:         s.BestScore,
		Won:               s.Won,
		Over:              s.Over,
		Size:              s.Size,
		HasSeenWinMessage: s.HasSeenWinMessage,
		MoveCount:         s.MoveCount,
		StartTime:         s.StartTime.UnixMilli(),
		Combo:             s.Combo,
		WinningTile:       s.WinningTile,
	})
}

// DecodeSnapshot parses a persisted game. Anything inconsistent is rejected
// as a whole with ErrMalformedSnapshot; nothing is partially adopted.
func DecodeSnapshot(data []byte) (State, error) {
	var sg savedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if sg.Board == nil || sg.Score == nil {
		return State{}, fmt.Errorf("%w: missing board or score", ErrMalformedSnapshot)
	}

	board, err := BoardFromRows(sg.Board)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	for _, row := range sg.Board {
		for _, v := range row {
			if v != 0 && !isTileValue(v) {
				return State{}, fmt.Errorf("%w: tile %d", ErrMalformedSnapshot, v)
			}
		}
	}

	size := sg.Size
	if size == 0 {
		size = board.Size()
	}
	if size != board.Size() {
		return State{}, fmt.Errorf("%w: size %d does not match %dx%d board", ErrMalformedSnapshot, sg.Size, board.Size(), board.Size())
	}
	if *sg.Score < 0 || sg.BestScore < 0 || sg.MoveCount < 0 || sg.Combo < 0 {
		return State{}, fmt.Errorf("%w: negative counter", ErrMalformedSnapshot)
	}

	winning := sg.WinningTile
	if winning == 0 {
		winning = DefaultWinningTile
	}
	if !isTileValue(winning) {
		return State{}, fmt.Errorf("%w: winning tile %d", ErrMalformedSnapshot, winning)
	}

	return State{
		Board:             board,
		Score:             *sg.Score,
		BestScore:         sg.BestScore,
		Won:               sg.Won,
		Over:              sg.Over,
		Size:              size,
		HasSeenWinMessage: sg.HasSeenWinMessage,
		MoveCount:         sg.MoveCount,
		StartTime:         time.UnixMilli(sg.StartTime),
		Combo:             sg.Combo,
		WinningTile:       winning,
	}, nil
}
