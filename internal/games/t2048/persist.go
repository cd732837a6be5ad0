package t2048

import (
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Storage keys.
const (
	BestScoreKey = "2048-best-score"
	GameStateKey = "2048-current-game"
)

// KVStore is the key-value storage the game persists into.
// Get reports ok=false for a missing key.
type KVStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Persistence wraps a KVStore with the game's load/save hooks.
// Storage errors are logged and swallowed: loads degrade to "absent" and
// saves are fire-and-forget. A nil store disables persistence.
type Persistence struct {
	kv     KVStore
	logger *log.Logger
}

// NewPersistence creates the persistence hooks over kv.
func NewPersistence(kv KVStore, logger *log.Logger) *Persistence {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Persistence{kv: kv, logger: logger}
}

// Enabled reports whether a store is attached.
func (p *Persistence) Enabled() bool {
	return p.kv != nil
}

// LoadBestScore returns the stored best score, or 0 if absent or unreadable.
func (p *Persistence) LoadBestScore() int {
	if p.kv == nil {
		return 0
	}
	raw, ok, err := p.kv.Get(BestScoreKey)
	if err != nil {
		p.logger.Warn("could not load best score", "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		p.logger.Warn("ignoring malformed best score", "value", raw)
		return 0
	}
	return score
}

// SaveBestScore stores score as the best score.
func (p *Persistence) SaveBestScore(score int) {
	if p.kv == nil {
		return
	}
	if err := p.kv.Set(BestScoreKey, strconv.Itoa(score)); err != nil {
		p.logger.Warn("could not save best score", "score", score, "error", err)
	}
}

// SaveState stores s without its undo history.
func (p *Persistence) SaveState(s State) {
	if p.kv == nil {
		return
	}
	data, err := EncodeSnapshot(s)
	if err != nil {
		p.logger.Warn("could not encode game", "error", err)
		return
	}
	if err := p.kv.Set(GameStateKey, string(data)); err != nil {
		p.logger.Warn("could not save game", "error", err)
	}
}

// LoadState returns the saved game with StartTime set to now.
// A malformed snapshot is treated as absent.
func (p *Persistence) LoadState(now time.Time) (State, bool) {
	if p.kv == nil {
		return State{}, false
	}
	raw, ok, err := p.kv.Get(GameStateKey)
	if err != nil {
		p.logger.Warn("could not load saved game", "error", err)
		return State{}, false
	}
	if !ok {
		return State{}, false
	}

	s, err := DecodeSnapshot([]byte(raw))
	if err != nil {
		p.logger.Warn("discarding saved game", "error", err)
		return State{}, false
	}
	s.StartTime = now
	return s, true
}

// ClearSavedState removes the saved game.
func (p *Persistence) ClearSavedState() {
	if p.kv == nil {
		return
	}
	if err := p.kv.Remove(GameStateKey); err != nil {
		p.logger.Warn("could not clear saved game", "error", err)
	}
}
