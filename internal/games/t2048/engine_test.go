package t2048

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/storage"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithRandom(core.NewScriptedSource(0)),
		WithClock(func() time.Time { return testNow }),
	}, opts...)
	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

// stateFrom builds a fresh in-progress state around the given rows.
func stateFrom(rows [][]int) State {
	b := MustBoardFromRows(rows)
	return State{
		Board:       b,
		Size:        b.Size(),
		StartTime:   testNow,
		WinningTile: DefaultWinningTile,
	}
}

func TestNewGame(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), WithRandom(core.NewScriptedSource(0.0, 0.5, 0.0, 0.95)))

	s := e.NewGame()

	assert.Equal(t, 4, s.Size)
	assert.Equal(t, 2, s.Board.TileCount())
	assert.Equal(t, 2, s.Board.Get(Position{0, 0}))
	assert.Equal(t, 4, s.Board.Get(Position{0, 1}))
	assert.Zero(t, s.Score)
	assert.Zero(t, s.BestScore)
	assert.Zero(t, s.MoveCount)
	assert.False(t, s.Won)
	assert.False(t, s.Over)
	assert.False(t, s.CanUndo())
	assert.Equal(t, testNow, s.StartTime)
	assert.Equal(t, DefaultWinningTile, s.WinningTile)
	assert.Equal(t, StatusPlaying, StatusOf(s))
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	bad := []Config{
		{Size: 0, WinningTile: 2048, InitialTiles: 2},
		{Size: -3, WinningTile: 2048, InitialTiles: 2},
		{Size: 4, WinningTile: 1000, InitialTiles: 2},
		{Size: 4, WinningTile: 1, InitialTiles: 2},
		{Size: 2, WinningTile: 2048, InitialTiles: 5},
		{Size: 4, WinningTile: 2048, InitialTiles: -1},
	}
	for _, cfg := range bad {
		_, err := NewEngine(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, "config %+v", cfg)
	}
}

func TestProcessMoveOverIsNoop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := stateFrom([][]int{{2, 2}, {0, 0}})
	s.Over = true

	next := e.ProcessMove(s, DirLeft)
	assert.Equal(t, s, next)
}

func TestProcessMoveNoChangeIsNoop(t *testing.T) {
	src := core.NewScriptedSource(0.3)
	e := newTestEngine(t, DefaultConfig(), WithRandom(src))
	s := stateFrom([][]int{{2, 0}, {0, 0}})

	next := e.ProcessMove(s, DirUp)
	assert.Equal(t, s, next)
	assert.Zero(t, src.Consumed(), "no tile may spawn on a no-op move")

	next = e.ProcessMove(s, Direction(99))
	assert.Equal(t, s, next)
}

func TestProcessMoveSpawnsOneTile(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), WithRandom(core.NewSeededSource(5)))
	s := stateFrom([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
	})

	next := e.ProcessMove(s, DirRight)

	assert.Equal(t, 3, next.Board.TileCount())
	assert.Equal(t, 1, next.MoveCount)
	assert.Equal(t, 2, next.Board.Get(Position{0, 3}))
	assert.Equal(t, 4, next.Board.Get(Position{2, 3}))
	assert.True(t, next.CanUndo())
	// input untouched
	assert.Equal(t, 2, s.Board.TileCount())
	assert.Zero(t, s.MoveCount)
}

func TestProcessMoveWin(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := stateFrom([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	won := e.ProcessMove(s, DirLeft)
	assert.True(t, won.Won)
	assert.True(t, won.HasSeenWinMessage)
	assert.Equal(t, 2048, won.Score)
	assert.Equal(t, StatusWon, StatusOf(won))

	// The notification fires once; play continues.
	after := e.ProcessMove(won, DirRight)
	require.Equal(t, 2, after.MoveCount)
	assert.False(t, after.Won)
	assert.True(t, after.HasSeenWinMessage)

	cont := ContinueAfterWin(won)
	assert.False(t, cont.Won)
	assert.True(t, cont.HasSeenWinMessage)
	assert.Equal(t, won.Board, cont.Board)
}

func TestProcessMoveCustomWinningTile(t *testing.T) {
	cfg := Config{Size: 2, WinningTile: 8, InitialTiles: 1}
	e := newTestEngine(t, cfg)
	s := stateFrom([][]int{{4, 4}, {0, 0}})
	s.WinningTile = 8

	next := e.ProcessMove(s, DirLeft)
	assert.True(t, next.Won)
	assert.Equal(t, 8, next.Score)
}

func TestProcessMoveGameOver(t *testing.T) {
	e := newTestEngine(t, Config{Size: 2, WinningTile: 2048, InitialTiles: 0},
		WithRandom(core.NewScriptedSource(0.0, 0.95)))
	s := stateFrom([][]int{{8, 2}, {0, 4}})

	next := e.ProcessMove(s, DirDown)

	want := MustBoardFromRows([][]int{{4, 2}, {8, 4}})
	assert.True(t, next.Board.Equal(want), "board = %s", next.Board)
	assert.True(t, next.Over)
	assert.Zero(t, next.Score)
	assert.Equal(t, StatusGameOver, StatusOf(next))

	// Finished games ignore further input.
	assert.Equal(t, next, e.ProcessMove(next, DirUp))
}

func TestProcessMoveScoreAndCombo(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := stateFrom([][]int{
		{2, 2, 4, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	s = e.ProcessMove(s, DirLeft)
	assert.Equal(t, 12, s.Score)
	assert.Equal(t, 1, s.Combo)
	assert.Equal(t, 12, s.BestScore)

	// [4,8,...] down: nothing merges
	s = e.ProcessMove(s, DirDown)
	require.Equal(t, 2, s.MoveCount)
	assert.Equal(t, 12, s.Score)
	assert.Zero(t, s.Combo)
}

func TestBestScorePersistedOnlyWhenImproved(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(BestScoreKey, "100"))
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	s := e.NewGame()
	assert.Equal(t, 100, s.BestScore)

	s = stateFrom([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s.BestScore = 100
	s = e.ProcessMove(s, DirLeft)
	assert.Equal(t, 4, s.Score)
	assert.Equal(t, 100, s.BestScore)
	v, _, _ := mem.Get(BestScoreKey)
	assert.Equal(t, "100", v)

	s = stateFrom([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s.Score = 98
	s.BestScore = 100
	s = e.ProcessMove(s, DirLeft)
	assert.Equal(t, 102, s.BestScore)
	v, _, _ = mem.Get(BestScoreKey)
	assert.Equal(t, "102", v)
}

func TestUndo(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	start := stateFrom([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	moved := e.ProcessMove(start, DirLeft)
	require.True(t, moved.CanUndo())

	back := Undo(moved)
	assert.True(t, back.Board.Equal(start.Board))
	assert.Zero(t, back.Score)
	assert.Zero(t, back.MoveCount)
	assert.False(t, back.CanUndo())
	assert.Nil(t, back.History)
	// BestScore keeps the value reached before undoing.
	assert.Equal(t, 4, back.BestScore)

	// Nothing left to undo.
	assert.Equal(t, back, Undo(back))
}

func TestHistoryIsCapped(t *testing.T) {
	e := newTestEngine(t, Config{Size: 6, WinningTile: 2048, InitialTiles: 2},
		WithRandom(core.NewSeededSource(1)))
	s := e.NewGame()

	for s.MoveCount < 15 {
		before := s.MoveCount
		for _, dir := range Directions {
			s = e.ProcessMove(s, dir)
			if s.MoveCount > before {
				break
			}
		}
		require.Greater(t, s.MoveCount, before, "stuck at %s", s.Board)
	}

	require.Len(t, s.History, HistoryLimit)
	assert.Equal(t, 5, s.History[0].MoveCount, "oldest snapshots are dropped first")
	for _, h := range s.History {
		assert.Nil(t, h.History, "snapshots carry no nested history")
	}

	undos := 0
	for s.CanUndo() {
		s = Undo(s)
		undos++
	}
	assert.Equal(t, HistoryLimit, undos)
	assert.Equal(t, 5, s.MoveCount)
}

func TestHistoryNotShared(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := stateFrom([][]int{
		{2, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	one := e.ProcessMove(s, DirLeft)
	two := e.ProcessMove(one, DirDown)
	require.Len(t, one.History, 1)
	require.Len(t, two.History, 2)

	// Branching from an older state must not disturb the newer one.
	branch := e.ProcessMove(one, DirRight)
	require.Len(t, branch.History, 2)
	assert.Equal(t, 1, two.History[1].MoveCount)
	assert.True(t, two.History[1].Board.Equal(one.Board))
}

func TestBestScoreMonotonic(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), WithRandom(core.NewSeededSource(9)))
	s := e.NewGame()

	best := 0
	for i := 0; i < 200 && !s.Over; i++ {
		s = e.ProcessMove(s, Directions[i%len(Directions)])
		require.GreaterOrEqual(t, s.BestScore, best)
		require.GreaterOrEqual(t, s.BestScore, s.Score)
		best = s.BestScore
		if i%7 == 0 {
			s = Undo(s)
			require.Equal(t, best, s.BestScore)
		}
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := stateFrom([][]int{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	s = e.ProcessMove(s, DirLeft)

	fresh := e.Reset(s)
	assert.Equal(t, s.BestScore, fresh.BestScore)
	assert.Zero(t, fresh.Score)
	assert.Zero(t, fresh.MoveCount)
	assert.False(t, fresh.CanUndo())
	assert.Equal(t, DefaultInitialTiles, fresh.Board.TileCount())

	big, err := e.ResetWith(s, Config{Size: 5, WinningTile: 4096, InitialTiles: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, big.Size)
	assert.Equal(t, 4096, big.WinningTile)
	assert.Equal(t, 3, big.Board.TileCount())
	assert.Equal(t, s.BestScore, big.BestScore)

	same, err := e.ResetWith(s, Config{Size: 0, WinningTile: 2048})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, s, same)
}

func TestSaveAndLoadGame(t *testing.T) {
	mem := storage.NewMemory()
	loadTime := testNow.Add(time.Hour)
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	_, ok := e.LoadGame()
	assert.False(t, ok, "nothing saved yet")

	s := stateFrom([][]int{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 8}, {0, 0, 0, 0}})
	s = e.ProcessMove(s, DirLeft)
	e.SaveGame(s)

	loader := newTestEngine(t, DefaultConfig(), WithStore(mem), WithClock(func() time.Time { return loadTime }))
	loaded, ok := loader.LoadGame()
	require.True(t, ok)
	assert.True(t, loaded.Board.Equal(s.Board))
	assert.Equal(t, s.Score, loaded.Score)
	assert.Equal(t, s.BestScore, loaded.BestScore)
	assert.Equal(t, s.MoveCount, loaded.MoveCount)
	assert.Equal(t, s.Combo, loaded.Combo)
	assert.Nil(t, loaded.History, "history is not persisted")
	assert.Equal(t, loadTime, loaded.StartTime)

	e.ClearSavedGame()
	_, ok = e.LoadGame()
	assert.False(t, ok)
}

func TestLoadGameMalformed(t *testing.T) {
	mem := storage.NewMemory()
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	for _, raw := range []string{
		`{not json`,
		`{"score": 10}`,
		`{"board": [[2,0],[0,0]]}`,
		`{"board": [[2,0],[0]], "score": 0}`,
		`{"board": [[3,0],[0,0]], "score": 0}`,
	} {
		require.NoError(t, mem.Set(GameStateKey, raw))
		_, ok := e.LoadGame()
		assert.False(t, ok, "adopted %s", raw)
	}

	require.NoError(t, mem.Set(BestScoreKey, "lots"))
	assert.Zero(t, e.NewGame().BestScore)
}

func TestStorageFailureIsSwallowed(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(BestScoreKey, "500"))
	mem.FailWith(errors.New("quota exceeded"))
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	s := e.NewGame()
	assert.Zero(t, s.BestScore)

	s = stateFrom([][]int{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	s = e.ProcessMove(s, DirLeft)
	assert.Equal(t, 4, s.Score)

	e.SaveGame(s)
	_, ok := e.LoadGame()
	assert.False(t, ok)
	e.ClearSavedGame()

	mem.FailWith(nil)
	v, _, _ := mem.Get(BestScoreKey)
	assert.Equal(t, "500", v, "failed writes must not land")
}

func TestElapsed(t *testing.T) {
	s := State{StartTime: testNow}

	assert.Equal(t, 125*time.Second, Elapsed(s, testNow.Add(125*time.Second+400*time.Millisecond)))
	assert.Zero(t, Elapsed(s, testNow.Add(-time.Minute)))

	assert.Equal(t, "02:05", FormatElapsed(125*time.Second))
	assert.Equal(t, "00:00", FormatElapsed(0))
	assert.Equal(t, "61:01", FormatElapsed(3661*time.Second))
}

func TestComboMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, ComboMultiplier(0), 1e-9)
	assert.InDelta(t, 1.5, ComboMultiplier(5), 1e-9)
	assert.InDelta(t, 3.0, ComboMultiplier(20), 1e-9)
	assert.InDelta(t, 3.0, ComboMultiplier(100), 1e-9)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusPlaying, StatusOf(State{}))
	assert.Equal(t, StatusWon, StatusOf(State{Won: true}))
	assert.Equal(t, StatusGameOver, StatusOf(State{Won: true, Over: true}))
}

func TestLoadGameKeepsStoredBestScore(t *testing.T) {
	mem := storage.NewMemory()
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	stale := stateFrom([][]int{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	stale.Score = 100
	stale.BestScore = 100
	e.SaveGame(stale)
	require.NoError(t, mem.Set(BestScoreKey, "5000"))

	loaded, ok := e.LoadGame()
	require.True(t, ok)
	assert.Equal(t, 5000, loaded.BestScore)

	next := e.ProcessMove(loaded, DirLeft)
	assert.Equal(t, 104, next.Score)
	assert.Equal(t, 5000, next.BestScore)

	stored, _, err := mem.Get(BestScoreKey)
	require.NoError(t, err)
	assert.Equal(t, "5000", stored)
}

func TestLoadGameKeepsHigherSnapshotBest(t *testing.T) {
	mem := storage.NewMemory()
	e := newTestEngine(t, DefaultConfig(), WithStore(mem))

	s := stateFrom([][]int{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	s.BestScore = 300
	e.SaveGame(s)
	require.NoError(t, mem.Set(BestScoreKey, "200"))

	loaded, ok := e.LoadGame()
	require.True(t, ok)
	assert.Equal(t, 300, loaded.BestScore)
}

func TestNewGameDealtStuck(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		over bool
	}{
		{"single full cell", Config{Size: 1, WinningTile: 2048, InitialTiles: 1}, true},
		{"single empty cell", Config{Size: 1, WinningTile: 2048, InitialTiles: 0}, false},
		{"full board with merges", Config{Size: 2, WinningTile: 2048, InitialTiles: 4}, false},
		{"no tiles", Config{Size: 4, WinningTile: 2048, InitialTiles: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestEngine(t, tt.cfg).NewGame()
			assert.Equal(t, tt.over, s.Over)
			if tt.over {
				assert.Equal(t, StatusGameOver, StatusOf(s))
			}
		})
	}
}

func TestStateTargetAndConfigMatches(t *testing.T) {
	assert.Equal(t, DefaultWinningTile, State{}.Target())
	assert.Equal(t, 256, State{WinningTile: 256}.Target())

	s := stateFrom([][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	assert.True(t, DefaultConfig().Matches(s))
	assert.False(t, Config{Size: 5, WinningTile: 2048, InitialTiles: 2}.Matches(s))
	assert.False(t, Config{Size: 4, WinningTile: 512, InitialTiles: 2}.Matches(s))

	s.WinningTile = 0
	assert.True(t, DefaultConfig().Matches(s))
}
