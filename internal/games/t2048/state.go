package t2048

import (
	"errors"
	"fmt"
	"time"
)

// Defaults for a classic game.
const (
	DefaultWinningTile  = 2048
	DefaultInitialTiles = 2

	// HistoryLimit is the number of undo snapshots kept.
	HistoryLimit = 10
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("t2048: invalid config")

// Config is fixed for the lifetime of a run.
type Config struct {
	Size         int `yaml:"size" json:"size"`
	WinningTile  int `yaml:"winning_tile" json:"winningTile"`
	InitialTiles int `yaml:"initial_tiles" json:"initialTiles"`
}

// DefaultConfig returns the classic 4x4 / 2048 / two-tile setup.
func DefaultConfig() Config {
	return Config{
		Size:         DefaultBoardSize,
		WinningTile:  DefaultWinningTile,
		InitialTiles: DefaultInitialTiles,
	}
}

// Validate checks the config for values no game can be built from.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	}
	if !isTileValue(c.WinningTile) {
		return fmt.Errorf("%w: winning tile %d is not a power of two", ErrInvalidConfig, c.WinningTile)
	}
	if c.InitialTiles < 0 || c.InitialTiles > c.Size*c.Size {
		return fmt.Errorf("%w: %d initial tiles on a %dx%d board", ErrInvalidConfig, c.InitialTiles, c.Size, c.Size)
	}
	return nil
}

// Matches reports whether s was dealt under this board size and winning tile.
func (c Config) Matches(s State) bool {
	return s.Size == c.Size && s.Target() == c.WinningTile
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// State is the externally visible snapshot of a game.
// Values are never modified after being returned; transitions build new ones.
type State struct {
	Board     Board
	Score     int
	BestScore int

	// Won is set on the turn the winning tile first appears.
	Won  bool
	Over bool
	Size int

	// HasSeenWinMessage latches once the winning tile has appeared,
	// suppressing further Won notifications.
	HasSeenWinMessage bool

	MoveCount int
	// History holds pre-move snapshots, oldest first, at most HistoryLimit.
	// Snapshots carry no history of their own.
	History   []State
	StartTime time.Time
	Combo     int

	WinningTile int
}

// Target returns the winning tile, defaulting for zero-value states.
func (s State) Target() int {
	if s.WinningTile == 0 {
		return DefaultWinningTile
	}
	return s.WinningTile
}

// snapshot returns s stripped of its history, for storing in History.
func (s State) snapshot() State {
	s.History = nil
	return s
}

// CanUndo reports whether Undo would restore anything.
func (s State) CanUndo() bool {
	return len(s.History) > 0
}

// pushHistory appends snap to history, keeping the most recent HistoryLimit
// entries. The input slice is never written to.
func pushHistory(history []State, snap State) []State {
	start := 0
	if len(history)+1 > HistoryLimit {
		start = len(history) + 1 - HistoryLimit
	}
	next := make([]State, 0, len(history)-start+1)
	next = append(next, history[start:]...)
	return append(next, snap)
}

// Undo restores the most recent history snapshot. BestScore keeps its
// current value. With no history the state is returned unchanged.
func Undo(s State) State {
	n := len(s.History)
	if n == 0 {
		return s
	}

	prev := s.History[n-1]
	var history []State
	if n > 1 {
		history = append([]State(nil), s.History[:n-1]...)
	}
	prev.History = history
	prev.BestScore = s.BestScore
	return prev
}

// ContinueAfterWin acknowledges the win so play can go on.
func ContinueAfterWin(s State) State {
	s.Won = false
	s.HasSeenWinMessage = true
	return s
}

// Elapsed returns the play time of s measured at now, truncated to seconds.
func Elapsed(s State, now time.Time) time.Duration {
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}

// FormatElapsed renders a duration as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ComboMultiplier returns the display multiplier for a combo streak,
// growing by 0.1 per scoring move and capped at 3.
func ComboMultiplier(combo int) float64 {
	return min(1+float64(combo)*0.1, 3)
}
