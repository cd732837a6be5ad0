package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagLimit int
	flagRun   string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores",
	Long: `Display the top scores and stats for a preset ("custom" for games
played with a non-preset config). Without an argument the configured game is used.

Examples:
  t2048 scores
  t2048 scores tiny --limit 20
  t2048 scores --run 6f1c2d1e-...
  t2048 scores quick --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show the games of one autoplay run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the preset")
}

func runScores(cmd *cobra.Command, args []string) {
	file := loadConfig()

	gameID := "custom"
	if len(args) == 1 {
		gameID = args[0]
		if gameID != "custom" {
			p, err := t2048.GetPreset(gameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				fmt.Fprintln(os.Stderr, "Run 't2048 presets' to see available presets.")
				os.Exit(1)
			}
			gameID = p.ID
		}
	} else {
		_, gameID = gameConfig(file)
	}

	// Open score storage
	store, err := storage.Open(file.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRun != "" {
		printRun(store, flagRun)
		return
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", gameID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play --preset %s' to set the first high score!\n", gameID)
		return
	}

	printEntries(scores)

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Best tile: %d  Total moves: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile, stats.TotalMoves)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}
}

func printRun(store *storage.Store, runID string) {
	scores, err := store.RunScores(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		return
	}
	if len(scores) == 0 {
		fmt.Printf("No games recorded for run %s.\n", runID)
		return
	}
	fmt.Printf("Run %s (%s)\n\n", runID, scores[0].GameID)
	printEntries(scores)
}

func printEntries(scores []storage.ScoreEntry) {
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Score", "Max Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "-----", "--------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8d  %-6d  %s\n", i+1, entry.Score, entry.MaxTile, entry.Moves, dateStr)
	}
}
