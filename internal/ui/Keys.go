package ui

import (
	"github.com/Mshel/retrosnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Quit:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Quit}}
}

// Direction maps a key press to the game's direction enum. Anything that is
// not a movement key maps to DirNone.
func (k KeyMap) Direction(msg tea.KeyMsg) game.Direction {
	switch {
	case key.Matches(msg, k.Up):
		return game.DirUp
	case key.Matches(msg, k.Down):
		return game.DirDown
	case key.Matches(msg, k.Left):
		return game.DirLeft
	case key.Matches(msg, k.Right):
		return game.DirRight
	}
	return game.DirNone
}
