// Package cli provides the line-driven play session used by the t2048
// command: it reads one command per line, drives the game engine and
// prints the board after every change.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

// Config contains the settings for a play session.
type Config struct {
	GameID   string // preset ID recorded with scores
	Features config.Features
	Advisor  *t2048.Advisor        // optional; hints fall back to the uncached evaluator
	Scores   storage.ScoreRecorder // optional
	Prompt   bool                  // print "> " before reading each line
	Logger   *log.Logger
	Now      func() time.Time
}

// Session is one interactive run of the game.
// It is driven from a single goroutine.
type Session struct {
	engine   *t2048.Engine
	cfg      Config
	keys     *KeyMapper
	state    t2048.State
	recorded bool // current game already stored in the score history
}

// NewSession creates a session around engine.
func NewSession(engine *t2048.Engine, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GameID == "" {
		cfg.GameID = t2048.Presets[0].ID
	}
	return &Session{
		engine: engine,
		cfg:    cfg,
		keys:   NewKeyMapper(),
	}
}

// State returns the current game state.
func (s *Session) State() t2048.State {
	return s.state
}

// Run plays until the input ends or the player quits.
func (s *Session) Run(in io.Reader, out io.Writer) error {
	s.start(out)

	scanner := bufio.NewScanner(in)
	for {
		if s.cfg.Prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if quit := s.handle(scanner.Text(), out); quit {
			break
		}
	}

	s.finish()
	return scanner.Err()
}

// start resumes a saved game when allowed, otherwise deals a new one.
func (s *Session) start(out io.Writer) {
	if s.cfg.Features.SaveLoad {
		loaded, ok := s.engine.LoadGame()
		if ok && !s.engine.Config().Matches(loaded) {
			// The old save is replaced once this game makes a move.
			s.cfg.Logger.Info("saved game is for another board, starting fresh",
				"size", loaded.Size, "winning_tile", loaded.Target())
			fmt.Fprintf(out, "Saved %dx%d game (reach %d) does not match this board, starting a new game.\n", loaded.Size, loaded.Size, loaded.Target())
			ok = false
		}
		if ok {
			s.state = loaded
			s.cfg.Logger.Info("resumed saved game", "score", loaded.Score, "moves", loaded.MoveCount)
			fmt.Fprintln(out, "Resumed saved game.")
			s.render(out)
			return
		}
	}
	s.state = s.engine.NewGame()
	s.render(out)
}

// handle applies one input line. It returns true when the player quits.
func (s *Session) handle(line string, out io.Writer) bool {
	action := s.keys.MapKey(line)

	if dir, ok := Direction(action); ok {
		s.move(dir, out)
		return false
	}

	switch action {
	case core.ActionUndo:
		if !s.cfg.Features.Undo {
			fmt.Fprintln(out, "Undo is disabled.")
			return false
		}
		if !s.state.CanUndo() {
			fmt.Fprintln(out, "Nothing to undo.")
			return false
		}
		s.state = t2048.Undo(s.state)
		s.recorded = false
		s.persist()
		s.render(out)

	case core.ActionHint:
		if !s.cfg.Features.Hints {
			fmt.Fprintln(out, "Hints are disabled.")
			return false
		}
		if s.cfg.Advisor != nil {
			fmt.Fprintln(out, s.cfg.Advisor.HintText(s.state.Board))
		} else {
			fmt.Fprintln(out, t2048.HintText(s.state.Board))
		}

	case core.ActionContinue:
		if !s.state.Won {
			fmt.Fprintln(out, "Nothing to continue.")
			return false
		}
		s.state = t2048.ContinueAfterWin(s.state)
		s.render(out)

	case core.ActionRestart:
		s.record()
		s.state = s.engine.Reset(s.state)
		s.recorded = false
		if s.cfg.Features.SaveLoad {
			s.engine.ClearSavedGame()
		}
		s.render(out)

	case core.ActionQuit:
		return true

	case core.ActionHelp:
		fmt.Fprint(out, HelpText(s.cfg.Features))

	default:
		if strings.TrimSpace(line) != "" {
			fmt.Fprintf(out, "Unknown command %q. Type help for the key bindings.\n", strings.TrimSpace(line))
		}
	}
	return false
}

func (s *Session) move(dir t2048.Direction, out io.Writer) {
	next := s.engine.ProcessMove(s.state, dir)
	if next.MoveCount == s.state.MoveCount {
		if s.state.Over {
			fmt.Fprintln(out, "Game over. Press r for a new game or q to quit.")
		} else {
			fmt.Fprintln(out, "Nothing moves that way.")
		}
		return
	}

	s.state = next
	if s.state.Over {
		s.record()
	}
	s.persist()
	s.render(out)
}

// persist keeps the saved game in step with the current state.
func (s *Session) persist() {
	if !s.cfg.Features.SaveLoad {
		return
	}
	if s.state.Over {
		s.engine.ClearSavedGame()
		return
	}
	s.engine.SaveGame(s.state)
}

// finish runs when the session ends. An unfinished game is kept for the next
// session when saving is on; otherwise it goes into the score history.
func (s *Session) finish() {
	if s.cfg.Features.SaveLoad && !s.state.Over {
		if s.state.MoveCount > 0 {
			s.engine.SaveGame(s.state)
		}
		return
	}
	s.record()
}

// record stores the current game in the score history, at most once.
func (s *Session) record() {
	if s.cfg.Scores == nil || s.recorded || s.state.MoveCount == 0 {
		return
	}
	entry := storage.ScoreEntry{
		GameID:       s.cfg.GameID,
		Score:        s.state.Score,
		MaxTile:      s.state.Board.MaxTile(),
		Moves:        s.state.MoveCount,
		DurationSecs: int(t2048.Elapsed(s.state, s.cfg.Now()) / time.Second),
	}
	if _, err := s.cfg.Scores.SaveScore(entry); err != nil {
		s.cfg.Logger.Warn("could not record score", "error", err)
		return
	}
	s.recorded = true
}

func (s *Session) render(out io.Writer) {
	fmt.Fprint(out, Render(s.state, s.cfg.Features, s.cfg.Now()))
}
