package ui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/retrosnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func newTestController(t *testing.T) ControllerModel {
	t.Helper()
	cfg := game.DefaultConfig()
	logger := log.New(io.Discard)
	round := game.NewRound(cfg, game.WithLogger(logger))
	gm := game.NewGameManager(cfg, round, game.WithManagerLogger(logger))

	model, _ := NewControllerModel(gm, 0, 0).Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return model.(ControllerModel)
}

func runesKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMovementKeysSteer(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want game.Direction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, game.DirUp},
		{runesKey('w'), game.DirUp},
		{tea.KeyMsg{Type: tea.KeyDown}, game.DirDown},
		{runesKey('s'), game.DirDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, game.DirLeft},
		{runesKey('a'), game.DirLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, game.DirRight},
		{runesKey('d'), game.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			m := newTestController(t)
			m.Update(tt.msg)

			select {
			case got := <-m.GameManager.DirectionChannel:
				if got != tt.want {
					t.Errorf("Expected %s, got %s", tt.want, got)
				}
			default:
				t.Errorf("Expected %q to queue a direction", tt.msg.String())
			}
		})
	}
}

func TestOtherKeysDoNotSteer(t *testing.T) {
	m := newTestController(t)
	m.Update(runesKey('x'))

	if len(m.GameManager.DirectionChannel) != 0 {
		t.Errorf("Expected no direction for an unbound key")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runesKey('q'), {Type: tea.KeyCtrlC}} {
		m := newTestController(t)
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("Expected a quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %q", msg.String())
		}
	}
}

func TestGameTickUpdatesView(t *testing.T) {
	m := newTestController(t)
	if !strings.Contains(m.View(), "Retro Snake") || !strings.Contains(m.View(), "Score: 0") {
		t.Fatalf("Expected the initial board, got:\n%s", m.View())
	}

	snapshot := m.GameManager.InitialSnapshot()
	snapshot.Score = 3
	model, cmd := m.Update(game.GameTickMsg{Snapshot: snapshot})
	if cmd == nil {
		t.Errorf("Expected to keep listening after a tick")
	}

	view := model.View()
	if !strings.Contains(view, "Score: 3") {
		t.Errorf("Expected the new score in the view, got:\n%s", view)
	}
	if !strings.Contains(view, "▶▶") {
		t.Errorf("Expected the head to point right")
	}
}

func TestRoundOverShowsEndScreen(t *testing.T) {
	tests := []struct {
		state game.RoundState
		want  string
	}{
		{game.StateLost, "You Lost"},
		{game.StateWon, "You Won!"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			m := newTestController(t)
			snapshot := m.GameManager.InitialSnapshot()
			snapshot.State = tt.state
			snapshot.Score = 7

			model, cmd := m.Update(game.RoundOverMsg{Snapshot: snapshot})
			if cmd != nil {
				t.Errorf("Expected no further listening after the round ended")
			}

			view := model.View()
			for _, want := range []string{tt.want, "Final Score: 7", "Press ESC to Close"} {
				if !strings.Contains(view, want) {
					t.Errorf("Expected %q in end screen, got:\n%s", want, view)
				}
			}

			model.Update(tea.KeyMsg{Type: tea.KeyUp})
			if len(m.GameManager.DirectionChannel) != 0 {
				t.Errorf("Expected movement keys to be ignored on the end screen")
			}
		})
	}
}

func TestListenerReturnsWhenLoopStops(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.TickDuration = time.Hour
	logger := log.New(io.Discard)
	gm := game.NewGameManager(cfg, game.NewRound(cfg, game.WithLogger(logger)), game.WithManagerLogger(logger))
	m := NewControllerModel(gm, 160, 60)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		gm.Run(ctx)
	}()

	msgCh := make(chan tea.Msg, 1)
	listen := m.Init()
	go func() { msgCh <- listen() }()

	cancel()
	<-runDone

	select {
	case msg := <-msgCh:
		if msg != nil {
			t.Errorf("Expected no message after the loop stopped, got %T", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Listener still blocked after the game loop stopped")
	}

	if _, cmd := m.Update(nil); cmd != nil {
		t.Errorf("Expected no further listening after a nil message")
	}
}

func TestListenerDeliversBufferedRoundOver(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Cells = 8
	cfg.TickDuration = time.Millisecond
	logger := log.New(io.Discard)
	gm := game.NewGameManager(cfg, game.NewRound(cfg, game.WithLogger(logger)), game.WithManagerLogger(logger))

	// the loop exits after publishing its last messages; nothing has read them yet
	if err := gm.Run(context.Background()); err != nil {
		t.Fatalf("Expected the round to end cleanly, got %v", err)
	}

	var model tea.Model = NewControllerModel(gm, 160, 60)
	cmd := model.Init()
	for cmd != nil {
		model, cmd = model.Update(cmd())
	}

	if model.(ControllerModel).CurrentScreen != GameOverScreen {
		t.Errorf("Expected the end screen once the buffered messages were read")
	}
}
