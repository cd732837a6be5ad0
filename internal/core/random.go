package core

import "math/rand"

// RandomSource produces uniform draws in [0, 1).
// *math/rand.Rand satisfies it, which is what production code injects.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// PickIndex maps one draw from src onto [0, n). n must be positive.
func PickIndex(src RandomSource, n int) int {
	idx := int(src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// ScriptedSource replays a fixed sequence of draws, wrapping around at the end.
// Used to script spawn positions and values in tests and scenarios.
type ScriptedSource struct {
	draws []float64
	next  int
}

// NewScriptedSource creates a source that yields draws in order.
// With no draws it always yields 0.
func NewScriptedSource(draws ...float64) *ScriptedSource {
	return &ScriptedSource{draws: append([]float64(nil), draws...)}
}

// Float64 returns the next scripted draw.
func (s *ScriptedSource) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

// Consumed returns how many draws have been taken so far.
func (s *ScriptedSource) Consumed() int {
	return s.next
}
