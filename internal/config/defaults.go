package config

import (
	_ "embed"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultStoragePath is where the sqlite database lives unless configured.
const DefaultStoragePath = "~/.t2048/t2048.db"

// Default returns the hardcoded configuration, matching defaults/t2048.yaml.
func Default() File {
	return File{
		Game: t2048.DefaultConfig(),
		Features: Features{
			Undo:        true,
			MoveCounter: true,
			Timer:       true,
			Combo:       true,
			Hints:       true,
			SaveLoad:    true,
		},
		Storage: Storage{
			Path: DefaultStoragePath,
		},
		Hint: Hint{
			CacheSize: t2048.DefaultAdvisorCacheSize,
		},
		Log: Log{
			Level: "info",
		},
	}
}
