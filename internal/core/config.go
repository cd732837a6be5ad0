// Package core provides the process-level building blocks shared by the game
// and its front ends: runtime config, random sources and player actions.
// It has no third-party dependencies to keep game logic pure and testable.
package core

import (
	"math/rand"
	"time"
)

// RuntimeConfig contains process-level settings passed to the engine at startup.
// The seed makes tile spawning reproducible across runs.
type RuntimeConfig struct {
	Seed int64 // RNG seed for deterministic gameplay (0 = time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed: 0, // 0 means use current time
	}
}

// ResolvedSeed returns the configured seed, substituting the current time for 0.
func (c RuntimeConfig) ResolvedSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}

// Source builds the random source described by this config.
func (c RuntimeConfig) Source() RandomSource {
	return rand.New(rand.NewSource(c.ResolvedSeed()))
}
