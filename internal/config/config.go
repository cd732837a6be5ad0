// Package config provides YAML-based configuration loading for t2048:
// the game setup, feature flags, storage location and logging.
package config

import (
	"fmt"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// File is the full contents of a t2048 config file.
type File struct {
	Game     t2048.Config `yaml:"game"`
	Features Features     `yaml:"features"`
	Storage  Storage      `yaml:"storage"`
	Hint     Hint         `yaml:"hint"`
	Log      Log          `yaml:"log"`
}

// Features toggles optional parts of the play session.
// Disabled features are hidden from the player; rules are unaffected.
type Features struct {
	Undo        bool `yaml:"undo"`
	MoveCounter bool `yaml:"move_counter"`
	Timer       bool `yaml:"timer"`
	Combo       bool `yaml:"combo"`
	Hints       bool `yaml:"hints"`
	SaveLoad    bool `yaml:"save_load"`
}

// Storage defines where games and scores are kept.
type Storage struct {
	Path string `yaml:"path"` // sqlite file; "~" expands to the home directory
}

// Hint configures the move advisor.
type Hint struct {
	CacheSize int `yaml:"cache_size"` // evaluations kept in the LRU cache
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate checks the loaded values.
func (f File) Validate() error {
	if err := f.Game.Validate(); err != nil {
		return fmt.Errorf("config: game: %w", err)
	}
	if f.Hint.CacheSize < 0 {
		return fmt.Errorf("config: hint.cache_size must not be negative, got %d", f.Hint.CacheSize)
	}
	switch f.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", f.Log.Level)
	}
	return nil
}
