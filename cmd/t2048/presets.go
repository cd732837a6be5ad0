package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in game presets",
	Long:  `Shows the named board sizes and winning tiles available with --preset.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range t2048.Presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Println("Available presets:")
	fmt.Println()

	fmt.Printf("  %-*s  %-5s  %-7s  %s\n", maxIDLen, "ID", "Board", "Target", "Name")
	fmt.Printf("  %-*s  %-5s  %-7s  %s\n", maxIDLen, "--", "-----", "------", "----")

	for _, p := range t2048.Presets {
		board := fmt.Sprintf("%dx%d", p.Config.Size, p.Config.Size)
		fmt.Printf("  %-*s  %-5s  %-7d  %s\n", maxIDLen, p.ID, board, p.Config.WinningTile, p.Name)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --preset <id>' to play one.")
}
