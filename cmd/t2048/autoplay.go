package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/autoplay"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
	"github.com/vovakirdan/t2048/internal/telemetry"
)

var (
	flagGames    int
	flagMaxMoves int
	flagVerbose  bool
	flagNoRecord bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the advisor play games unattended",
	Long: `Play games where every move is the advisor's suggestion.

Game i of a run uses seed+i, so a run with a fixed --seed is reproducible.
Results are recorded in the score history under one run ID.

Traces are exported when OTEL_EXPORTER_OTLP_ENDPOINT is set.

Examples:
  t2048 autoplay
  t2048 autoplay --games 20 --seed 1
  t2048 autoplay --preset tiny --verbose`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
	autoplayCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	autoplayCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print every move")
	autoplayCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record results in the score history")
}

// runAutoplay returns its error instead of exiting so deferred flushes run.
func runAutoplay(cmd *cobra.Command, args []string) error {
	file := loadConfig()
	logger := newLogger(file.Log.Level)
	gameCfg, gameID := gameConfig(file)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without traces", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("error shutting down telemetry", "error", err)
				}
			}()
		}
	}

	var scores storage.ScoreRecorder
	if !flagNoRecord {
		store, err := storage.Open(file.Storage.Path)
		if err != nil {
			logger.Warn("could not open database, results will not be recorded", "error", err)
		} else {
			defer store.Close()
			scores = store
		}
	}

	runner := autoplay.NewRunner(gameCfg, t2048.NewAdvisor(file.Hint.CacheSize), scores, logger)
	res, err := runner.Run(ctx, os.Stdout, autoplay.Config{
		Games:    flagGames,
		Seed:     flagSeed,
		MaxMoves: flagMaxMoves,
		GameID:   gameID,
		Verbose:  flagVerbose,
	})

	fmt.Println()
	fmt.Printf("Run:      %s\n", res.RunID)
	fmt.Printf("Games:    %d\n", len(res.Games))
	fmt.Printf("Best:     %d\n", res.BestScore())
	fmt.Printf("Win rate: %.0f%%\n", res.WinRate()*100)

	if err != nil {
		return fmt.Errorf("autoplay stopped: %w", err)
	}
	return nil
}
