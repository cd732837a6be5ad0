package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/platform/cli"
	"github.com/vovakirdan/t2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start an interactive game. Type one command per line.

Controls:
  w/a/s/d        - Move up/left/down/right (or type the direction)
  u              - Undo
  h              - Hint
  c              - Continue after reaching the winning tile
  r              - New game
  q              - Quit (an unfinished game is saved when save_load is on)

Examples:
  t2048 play
  t2048 play --preset big
  t2048 play --seed 42 --db ./t2048.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	file := loadConfig()
	logger := newLogger(file.Log.Level)
	gameCfg, gameID := gameConfig(file)

	opts := []t2048.Option{
		t2048.WithRandom(core.RuntimeConfig{Seed: flagSeed}.Source()),
		t2048.WithLogger(logger),
	}

	// Open storage; the game still works without it
	var scores storage.ScoreRecorder
	store, err := storage.Open(file.Storage.Path)
	if err != nil {
		logger.Warn("could not open database", "path", file.Storage.Path, "error", err)
		store = nil
	} else {
		opts = append(opts, t2048.WithStore(store))
		scores = store
	}

	engine, err := t2048.NewEngine(gameCfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := cli.NewSession(engine, cli.Config{
		GameID:   gameID,
		Features: file.Features,
		Advisor:  t2048.NewAdvisor(file.Hint.CacheSize),
		Scores:   scores,
		Prompt:   term.IsTerminal(int(os.Stdin.Fd())),
		Logger:   logger,
	})

	runErr := session.Run(os.Stdin, os.Stdout)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", runErr)
		os.Exit(1)
	}
}
