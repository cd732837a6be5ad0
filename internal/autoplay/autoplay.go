// Package autoplay lets the hint advisor play whole games unattended and
// records the results as one run in the score history.
package autoplay

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
	"github.com/vovakirdan/t2048/internal/telemetry"
)

// Config controls one autoplay run.
type Config struct {
	Games    int    // number of games to play
	Seed     int64  // seed of the first game; game i uses Seed+i (0 = time based)
	MaxMoves int    // per-game cap, 0 for none
	GameID   string // preset ID recorded with scores
	Verbose  bool   // print the board after every move
}

// DefaultConfig returns a single unbounded game.
func DefaultConfig() Config {
	return Config{
		Games:  1,
		GameID: t2048.Presets[0].ID,
	}
}

// GameResult summarizes one finished game.
type GameResult struct {
	Index   int
	Seed    int64
	Score   int
	MaxTile int
	Moves   int
	Won     bool // winning tile reached at some point
}

// Result is the outcome of a run.
type Result struct {
	RunID string
	Games []GameResult
}

// BestScore returns the highest score of the run.
func (r Result) BestScore() int {
	best := 0
	for _, g := range r.Games {
		best = max(best, g.Score)
	}
	return best
}

// WinRate returns the fraction of games that reached the winning tile.
func (r Result) WinRate() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	wins := 0
	for _, g := range r.Games {
		if g.Won {
			wins++
		}
	}
	return float64(wins) / float64(len(r.Games))
}

// Runner plays games with an Advisor choosing every move.
type Runner struct {
	game    t2048.Config
	advisor *t2048.Advisor
	scores  storage.ScoreRecorder
	logger  *log.Logger
	tracer  trace.Tracer
	newID   func() string
}

// NewRunner creates a runner. scores and logger may be nil.
func NewRunner(game t2048.Config, advisor *t2048.Advisor, scores storage.ScoreRecorder, logger *log.Logger) *Runner {
	if advisor == nil {
		advisor = t2048.NewAdvisor(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		game:    game,
		advisor: advisor,
		scores:  scores,
		logger:  logger,
		tracer:  telemetry.Tracer("autoplay"),
		newID:   uuid.NewString,
	}
}

// Run plays cfg.Games games, writing progress to w.
// It stops early with ctx.Err() when ctx is cancelled; games finished by then
// are still returned and recorded.
func (r *Runner) Run(ctx context.Context, w io.Writer, cfg Config) (Result, error) {
	if cfg.Games < 1 {
		return Result{}, fmt.Errorf("autoplay: games must be at least 1, got %d", cfg.Games)
	}
	if err := r.game.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.GameID == "" {
		cfg.GameID = t2048.Presets[0].ID
	}
	base := core.RuntimeConfig{Seed: cfg.Seed}.ResolvedSeed()

	res := Result{RunID: r.newID()}

	ctx, span := r.tracer.Start(ctx, "autoplay.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", res.RunID),
		attribute.Int("run.games", cfg.Games),
		attribute.Int64("run.seed", base),
		attribute.Int("game.size", r.game.Size),
	)

	r.logger.Info("autoplay started", "run", res.RunID, "games", cfg.Games, "seed", base)

	for i := range cfg.Games {
		g, err := r.playOne(ctx, w, cfg, i, base+int64(i))
		if err != nil {
			span.RecordError(err)
			return res, err
		}
		res.Games = append(res.Games, g)
		r.record(res.RunID, cfg.GameID, g)

		fmt.Fprintf(w, "Game %d: score %d, max tile %d, moves %d\n", i+1, g.Score, g.MaxTile, g.Moves)
	}

	span.SetAttributes(
		attribute.Int("run.best_score", res.BestScore()),
		attribute.Float64("run.win_rate", res.WinRate()),
	)
	r.logger.Info("autoplay finished", "run", res.RunID, "best", res.BestScore(), "win_rate", res.WinRate())
	return res, nil
}

func (r *Runner) playOne(ctx context.Context, w io.Writer, cfg Config, index int, seed int64) (GameResult, error) {
	ctx, span := r.tracer.Start(ctx, "autoplay.game")
	defer span.End()

	engine, err := t2048.NewEngine(r.game,
		t2048.WithRandom(core.NewSeededSource(seed)),
		t2048.WithLogger(r.logger),
	)
	if err != nil {
		return GameResult{}, err
	}

	state := engine.NewGame()
	won := false
	for !state.Over {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if cfg.MaxMoves > 0 && state.MoveCount >= cfg.MaxMoves {
			break
		}

		dir, ok := r.advisor.BestMove(state.Board)
		if !ok {
			break
		}
		state = engine.ProcessMove(state, dir)
		if state.Won {
			won = true
			state = t2048.ContinueAfterWin(state)
		}

		if cfg.Verbose {
			fmt.Fprintf(w, "%s\n%s\nScore: %d, Moves: %d\n\n", dir, state.Board, state.Score, state.MoveCount)
		}
	}

	g := GameResult{
		Index:   index,
		Seed:    seed,
		Score:   state.Score,
		MaxTile: state.Board.MaxTile(),
		Moves:   state.MoveCount,
		Won:     won,
	}
	span.SetAttributes(
		attribute.Int("game.index", index),
		attribute.Int64("game.seed", seed),
		attribute.Int("game.score", g.Score),
		attribute.Int("game.max_tile", g.MaxTile),
		attribute.Int("game.moves", g.Moves),
		attribute.Bool("game.won", g.Won),
	)
	return g, nil
}

func (r *Runner) record(runID, gameID string, g GameResult) {
	if r.scores == nil {
		return
	}
	_, err := r.scores.SaveScore(storage.ScoreEntry{
		GameID:  gameID,
		RunID:   runID,
		Score:   g.Score,
		MaxTile: g.MaxTile,
		Moves:   g.Moves,
	})
	if err != nil {
		r.logger.Warn("could not record autoplay game", "run", runID, "game", g.Index, "error", err)
	}
}
