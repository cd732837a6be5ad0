package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

func TestRenderBoard(t *testing.T) {
	b := t2048.MustBoardFromRows([][]int{
		{2, 0},
		{128, 4096},
	})

	out := RenderBoard(b)
	for _, want := range []string{"2", "128", "4096", "·"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderBoard() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStatusHonoursFeatures(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := t2048.State{Score: 40, BestScore: 100, MoveCount: 7, Combo: 3, StartTime: start}
	now := start.Add(65 * time.Second)

	all := config.Default().Features
	out := RenderStatus(s, all, now)
	for _, want := range []string{"Score: 40", "Best: 100", "Moves: 7", "Time: 01:05", "Combo x1.3"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderStatus() missing %q: %s", want, out)
		}
	}

	out = RenderStatus(s, config.Features{}, now)
	for _, hidden := range []string{"Moves:", "Time:", "Combo"} {
		if strings.Contains(out, hidden) {
			t.Errorf("RenderStatus() with features off shows %q: %s", hidden, out)
		}
	}
}

func TestRenderTitleDefaultsTarget(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	board := t2048.MustBoardFromRows([][]int{{2, 0}, {0, 0}})

	out := Render(t2048.State{Board: board, Size: 2, StartTime: now}, config.Default().Features, now)
	if !strings.Contains(out, "reach 2048") {
		t.Errorf("Render() of a state without a winning tile should target 2048:\n%s", out)
	}

	out = Render(t2048.State{Board: board, Size: 2, StartTime: now, WinningTile: 64}, config.Default().Features, now)
	if !strings.Contains(out, "reach 64") {
		t.Errorf("Render() missing custom target:\n%s", out)
	}
}
