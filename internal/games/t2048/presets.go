// Package t2048 implements the rules of the 2048 sliding-tile puzzle: the
// board, line merging, directional moves, tile spawning, a greedy hint
// evaluator and the game-state machine with undo and persistence hooks.
package t2048

import (
	"fmt"
	"strings"
)

// Preset is a named game configuration.
type Preset struct {
	ID     string
	Name   string
	Config Config
}

// Presets lists the built-in configurations. The first entry is the default.
var Presets = []Preset{
	{ID: "classic", Name: "Classic 2048", Config: Config{Size: 4, WinningTile: 2048, InitialTiles: 2}},
	{ID: "quick", Name: "Quick Game", Config: Config{Size: 4, WinningTile: 512, InitialTiles: 2}},
	{ID: "marathon", Name: "Marathon", Config: Config{Size: 4, WinningTile: 8192, InitialTiles: 2}},
	{ID: "big", Name: "Big Board", Config: Config{Size: 5, WinningTile: 4096, InitialTiles: 3}},
	{ID: "tiny", Name: "Tiny Board", Config: Config{Size: 3, WinningTile: 256, InitialTiles: 2}},
}

// GetPreset looks a preset up by ID, case-insensitively.
func GetPreset(id string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("t2048: unknown preset %q", id)
}

// PresetIDs returns the IDs of all presets.
func PresetIDs() []string {
	ids := make([]string, len(Presets))
	for i, p := range Presets {
		ids[i] = p.ID
	}
	return ids
}
