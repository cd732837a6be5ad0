// t2048 plays the 2048 sliding-tile puzzle in the terminal.
//
// Usage:
//
//	t2048 play               - Play an interactive game
//	t2048 hint <board>       - Suggest a move for a board
//	t2048 autoplay           - Let the advisor play games unattended
//	t2048 scores [preset]    - Show high scores
//	t2048 presets            - List game presets
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible games
//	--db <path>       - Set database path (default from config: ~/.t2048/t2048.db)
//	--config <path>   - Use a specific config file
//	--preset <id>     - Use a named preset instead of the configured game
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPreset string
)

func main() {
	// Load .env for local development; variables may also be set directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env file not loaded: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "t2048 - the 2048 puzzle in your terminal",
	Long: `t2048 is a terminal version of the 2048 sliding-tile puzzle.

Available commands:
  play      - Play an interactive game
  hint      - Suggest the best move for a board
  autoplay  - Let the advisor play games on its own
  scores    - View high scores and stats
  presets   - List the built-in game presets

Examples:
  t2048 play
  t2048 play --preset tiny
  t2048 hint "2,2,0,0/0,4,0,0/0,0,0,0/0,0,0,2"
  t2048 autoplay --games 10 --seed 42
  t2048 scores classic`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Game preset: "+fmt.Sprint(t2048.PresetIDs()))

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
}

// loadConfig loads the config file and applies the global flags.
// It exits the process on error.
func loadConfig() config.File {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg
}

// gameConfig returns the game setup and the ID scores are filed under.
// A configured game matching a preset is filed under that preset.
func gameConfig(cfg config.File) (t2048.Config, string) {
	if flagPreset != "" {
		p, err := t2048.GetPreset(flagPreset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 't2048 presets' to see available presets.")
			os.Exit(1)
		}
		return p.Config, p.ID
	}
	for _, p := range t2048.Presets {
		if p.Config == cfg.Game {
			return p.Config, p.ID
		}
	}
	return cfg.Game, "custom"
}

// newLogger builds the process logger writing to stderr.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", level)
			lvl = log.InfoLevel
		}
		logger.SetLevel(lvl)
	}
	return logger
}
