package ui

import (
	"fmt"

	"github.com/Mshel/retrosnake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds what the end screen needs once the round is terminal.
type GameOverState struct {
	Snapshot     game.Snapshot
	ScreenWidth  int
	ScreenHeight int
}

var (
	lostStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Padding(1, 5)
	wonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Padding(1, 5)

	finalScoreStyle = lipgloss.NewStyle().Padding(0, 0, 1, 0)
	closeHintStyle  = lipgloss.NewStyle().Faint(true)
)

// RenderGameOverScreen draws the result and final score.
func (g GameOverState) RenderGameOverScreen() string {
	title := lostStyle.Render("You Lost")
	if g.Snapshot.State == game.StateWon {
		title = wonStyle.Render("You Won!")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		finalScoreStyle.Render(fmt.Sprintf("Final Score: %d", g.Snapshot.Score)),
		closeHintStyle.Render("Press ESC to Close"),
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(1, 4).Render(content),
	)
}
