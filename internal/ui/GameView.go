package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/retrosnake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	fieldColor = lipgloss.Color("#ACCC66")

	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("0")).
			BorderBackground(fieldColor)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 0, 1, 0)
	scoreStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0, 0, 0)

	// every cell is two columns wide so the board looks square in a terminal
	voidCell = lipgloss.NewStyle().Background(fieldColor).Render("  ")
	foodCell = lipgloss.NewStyle().Background(fieldColor).Foreground(lipgloss.Color("#E62937")).Render("● ")
	bodyCell = lipgloss.NewStyle().Background(lipgloss.Color("#505050")).Render("  ")
	headCell = lipgloss.NewStyle().Background(lipgloss.Color("#303030")).Foreground(fieldColor).Bold(true)

	headRunes = map[game.Direction]string{
		game.DirUp:    "▲▲",
		game.DirDown:  "▼▼",
		game.DirLeft:  "◀◀",
		game.DirRight: "▶▶",
	}
)

// GameViewModel renders the latest snapshot. It never mutates the round.
type GameViewModel struct {
	Snapshot game.Snapshot
	Score    int
}

func NewGameModel(initial game.Snapshot) GameViewModel {
	return GameViewModel{Snapshot: initial, Score: initial.Score}
}

func (m GameViewModel) View(width, height int, keys KeyMap, helpModel help.Model) string {
	board := mapViewStyle.Render(m.renderMap())

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Retro Snake"),
		board,
		scoreStyle.Render(fmt.Sprintf("Score: %d", m.Score)),
		helpModel.View(keys),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderMap() string {
	cells := m.Snapshot.Cells()
	head := headCell.Render(headRunes[m.Snapshot.Direction])

	var sb strings.Builder
	for row, line := range cells {
		for _, occupant := range line {
			switch occupant {
			case game.OccupantHead:
				sb.WriteString(head)
			case game.OccupantBody:
				sb.WriteString(bodyCell)
			case game.OccupantFood:
				sb.WriteString(foodCell)
			default:
				sb.WriteString(voidCell)
			}
		}
		if row < len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
