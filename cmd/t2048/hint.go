package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/platform/cli"
)

var hintCmd = &cobra.Command{
	Use:   "hint <board>",
	Short: "Suggest the best move for a board",
	Long: `Evaluate every move on the given board and print the suggestion.

Rows are separated by '/' and cells by ',' or spaces; 0 is an empty cell.

Examples:
  t2048 hint "2,2,0,0/0,4,0,0/0,0,0,0/0,0,0,2"
  t2048 hint 2 4 / 4 2`,
	Args: cobra.MinimumNArgs(1),
	Run:  runHint,
}

func runHint(cmd *cobra.Command, args []string) {
	board, err := t2048.ParseBoard(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(cli.RenderBoard(board))
	fmt.Printf("Evaluation: %.1f\n", t2048.Evaluate(board))
	fmt.Println()

	for _, dir := range t2048.Directions {
		res := t2048.Move(board, dir)
		if !res.Changed {
			fmt.Printf("  %-5s  -\n", dir)
			continue
		}
		fmt.Printf("  %-5s  %10.1f  (+%d)\n", dir, t2048.Evaluate(res.Board), res.Score)
	}

	fmt.Println()
	fmt.Println(t2048.HintText(board))
}
