package ui

import (
	"github.com/Mshel/retrosnake/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	GameScreen Screen = iota
	GameOverScreen
)

type ControllerModel struct {
	CurrentScreen Screen
	GameManager   *game.GameManager

	GameModel     GameViewModel
	GameOverState GameOverState

	ScreenWidth  int
	ScreenHeight int

	keys KeyMap
	help help.Model
}

func NewControllerModel(gameManager *game.GameManager, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: GameScreen,
		GameManager:   gameManager,
		GameModel:     NewGameModel(gameManager.InitialSnapshot()),
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		keys:          DefaultKeyMap(),
		help:          help.New(),
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case GameScreen:
		return m.GameModel.View(m.ScreenWidth, m.ScreenHeight, m.keys, m.help)
	case GameOverScreen:
		return m.GameOverState.RenderGameOverScreen()
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.GameOverState.ScreenWidth = msg.Width
		m.GameOverState.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.CurrentScreen == GameScreen {
			if dir := m.keys.Direction(msg); dir != game.DirNone {
				m.GameManager.Steer(dir)
			}
		}
		return m, nil

	case game.GameTickMsg:
		m.GameModel.Snapshot = msg.Snapshot
		m.GameModel.Score = msg.Snapshot.Score
		return m, m.listenForGameUpdates()

	case game.ScoreChangedMsg:
		m.GameModel.Score = msg.Score
		return m, m.listenForGameUpdates()

	case game.RoundOverMsg:
		// no more updates follow a terminal state
		m.CurrentScreen = GameOverScreen
		m.GameOverState = GameOverState{
			Snapshot:     msg.Snapshot,
			ScreenWidth:  m.ScreenWidth,
			ScreenHeight: m.ScreenHeight,
		}
		return m, nil
	}

	return m, nil
}

func (m ControllerModel) listenForGameUpdates() tea.Cmd {
	updates := m.GameManager.Updates()
	done := m.GameManager.Done()
	return func() tea.Msg {
		select {
		case msg := <-updates:
			return msg
		case <-done:
			// the loop may have buffered its last messages before exiting
			select {
			case msg := <-updates:
				return msg
			default:
				return nil
			}
		}
	}
}
