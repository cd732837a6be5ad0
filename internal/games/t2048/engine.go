package t2048

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/core"
)

// Engine runs the game-state machine. It owns the random source used for
// spawning, the clock, and the persistence hooks.
// An Engine is not safe for concurrent use; moves must be serialized.
type Engine struct {
	cfg     Config
	rng     core.RandomSource
	kv      KVStore
	persist *Persistence
	now     func() time.Time
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the random source for spawns.
func WithRandom(src core.RandomSource) Option {
	return func(e *Engine) {
		e.rng = src
	}
}

// WithStore enables persistence through the given key-value store.
func WithStore(kv KVStore) Option {
	return func(e *Engine) {
		e.kv = kv
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger. Moves are logged at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine validates cfg and builds an engine.
// Without WithRandom, spawns use a time-seeded source.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = core.DefaultConfig().Source()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.persist = NewPersistence(e.kv, e.logger)

	return e, nil
}

// Config returns the config new games are created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Persistence exposes the engine's persistence hooks.
func (e *Engine) Persistence() *Persistence {
	return e.persist
}

// NewGame creates a fresh game. BestScore is loaded from persistence.
func (e *Engine) NewGame() State {
	s := e.newState(e.cfg)
	s.BestScore = e.persist.LoadBestScore()
	return s
}

// newState builds the initial state for a config already validated.
func (e *Engine) newState(cfg Config) State {
	board, err := InitBoard(cfg.Size, cfg.InitialTiles, e.rng)
	if err != nil {
		// Validate rejects every size InitBoard would.
		panic(fmt.Sprintf("t2048: config passed validation but board failed: %v", err))
	}

	return State{
		Board:       board,
		Over:        !board.HasEmptyCell() && IsGameOver(board), // dealt full and stuck
		Size:        cfg.Size,
		StartTime:   e.now(),
		WinningTile: cfg.WinningTile,
	}
}

// ProcessMove plays one turn.
//
// A finished game, or a move that does not change the board, returns s
// unchanged. Otherwise a tile is spawned, score and flags are updated, and
// the pre-move state is pushed onto the undo history.
func (e *Engine) ProcessMove(s State, dir Direction) State {
	if s.Over {
		return s
	}

	res := Move(s.Board, dir)
	if !res.Changed {
		// Board didn't change - don't spawn new tile
		return s
	}

	board := SpawnRandom(res.Board, e.rng)

	score := s.Score + res.Score
	best := max(score, s.BestScore)
	if best > s.BestScore {
		e.persist.SaveBestScore(best)
	}

	hasTarget := IsGameWon(board, s.Target())

	combo := 0
	if res.Score > 0 {
		combo = s.Combo + 1
	}

	next := State{
		Board:             board,
		Score:             score,
		BestScore:         best,
		Won:               hasTarget && !s.HasSeenWinMessage,
		Over:              IsGameOver(board),
		Size:              s.Size,
		HasSeenWinMessage: s.HasSeenWinMessage || hasTarget,
		MoveCount:         s.MoveCount + 1,
		History:           pushHistory(s.History, s.snapshot()),
		StartTime:         s.StartTime,
		Combo:             combo,
		WinningTile:       s.WinningTile,
	}

	e.logger.Debug("move",
		"dir", dir,
		"gained", res.Score,
		"score", next.Score,
		"moves", next.MoveCount,
	)
	if next.Won {
		e.logger.Info("winning tile reached", "tile", next.Target(), "score", next.Score, "moves", next.MoveCount)
	}
	if next.Over {
		e.logger.Info("game over", "score", next.Score, "max_tile", board.MaxTile(), "moves", next.MoveCount)
	}

	return next
}

// Reset starts a new game with the engine config, carrying BestScore over.
func (e *Engine) Reset(s State) State {
	next := e.newState(e.cfg)
	next.BestScore = s.BestScore
	return next
}

// ResetWith starts a new game with cfg, carrying BestScore over.
func (e *Engine) ResetWith(s State, cfg Config) (State, error) {
	if err := cfg.Validate(); err != nil {
		return s, err
	}
	next := e.newState(cfg)
	next.BestScore = s.BestScore
	return next, nil
}

// SaveGame stores s (without history) for a later LoadGame.
func (e *Engine) SaveGame(s State) {
	e.persist.SaveState(s)
}

// LoadGame returns the saved game, if any. The elapsed-time origin is reset
// to now and BestScore never drops below the stored best score.
// Missing or malformed data reports ok=false.
func (e *Engine) LoadGame() (State, bool) {
	s, ok := e.persist.LoadState(e.now())
	if !ok {
		return State{}, false
	}
	s.BestScore = max(s.BestScore, e.persist.LoadBestScore())
	return s, true
}

// ClearSavedGame removes any saved game.
func (e *Engine) ClearSavedGame() {
	e.persist.ClearSavedState()
}
