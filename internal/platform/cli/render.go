package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

const cellWidth = 6

var (
	emptyStyle = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("240"))
	tileBase   = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Bold(true)
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// tileColors maps tile values to ANSI 256 foreground colors.
var tileColors = map[int]string{
	2:    "255",
	4:    "229",
	8:    "215",
	16:   "209",
	32:   "203",
	64:   "196",
	128:  "228",
	256:  "227",
	512:  "226",
	1024: "220",
	2048: "214",
}

// tileStyle returns the style for a tile; tiles beyond 2048 share one color.
func tileStyle(v int) lipgloss.Style {
	color, ok := tileColors[v]
	if !ok {
		color = "201"
	}
	return tileBase.Foreground(lipgloss.Color(color))
}

// RenderBoard draws the board as a bordered grid of styled cells.
func RenderBoard(b t2048.Board) string {
	rows := make([]string, b.Size())
	for r := range b.Size() {
		cells := make([]string, b.Size())
		for c := range b.Size() {
			v := b.Get(t2048.Position{Row: r, Col: c})
			if v == 0 {
				cells[c] = emptyStyle.Render("·")
			} else {
				cells[c] = tileStyle(v).Render(strconv.Itoa(v))
			}
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

// RenderStatus renders the score line, honouring the enabled features.
func RenderStatus(s t2048.State, features config.Features, now time.Time) string {
	parts := []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Best: %d", s.BestScore),
	}
	if features.MoveCounter {
		parts = append(parts, fmt.Sprintf("Moves: %d", s.MoveCount))
	}
	if features.Timer {
		parts = append(parts, "Time: "+t2048.FormatElapsed(t2048.Elapsed(s, now)))
	}
	if features.Combo && s.Combo > 1 {
		parts = append(parts, fmt.Sprintf("Combo x%.1f", t2048.ComboMultiplier(s.Combo)))
	}
	return infoStyle.Render(strings.Join(parts, "  |  "))
}

// Render draws the full view for one state.
func Render(s t2048.State, features config.Features, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("2048 · reach %d", s.Target())))
	sb.WriteString("\n")
	sb.WriteString(RenderBoard(s.Board))
	sb.WriteString("\n")
	sb.WriteString(RenderStatus(s, features, now))
	sb.WriteString("\n")

	switch t2048.StatusOf(s) {
	case t2048.StatusWon:
		sb.WriteString(titleStyle.Render("You win! Press c to keep going or r for a new game."))
		sb.WriteString("\n")
	case t2048.StatusGameOver:
		sb.WriteString(titleStyle.Render("Game over. Press r for a new game or q to quit."))
		sb.WriteString("\n")
	}
	return sb.String()
}

// HelpText lists the bindings for the enabled features.
func HelpText(features config.Features) string {
	lines := []string{
		"w/a/s/d or up/left/down/right  move",
	}
	if features.Undo {
		lines = append(lines, "u                              undo")
	}
	if features.Hints {
		lines = append(lines, "h                              hint")
	}
	lines = append(lines,
		"c                              continue after a win",
		"r                              new game",
		"q                              quit",
	)
	return strings.Join(lines, "\n") + "\n"
}
