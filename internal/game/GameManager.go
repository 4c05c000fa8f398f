package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

var ErrAlreadyRunning = errors.New("game loop already running")

type GameTickMsg struct {
	Snapshot Snapshot
}

type ScoreChangedMsg struct {
	Score int
}

type RoundOverMsg struct {
	Snapshot Snapshot
}

// Pilot steers the snake instead of the player.
type Pilot interface {
	NextDirection(snapshot Snapshot) (Direction, error)
}

// GameManager owns a single Round and drives it from a ticker. The round is
// only ever touched by the goroutine running Run.
type GameManager struct {
	DirectionChannel chan Direction
	UpdateChannel    chan tea.Msg

	round        *Round
	initial      Snapshot
	tickDuration time.Duration
	pilot        Pilot
	logger       *log.Logger
	isRunning    atomic.Bool
	done         chan struct{}
	doneOnce     sync.Once
}

type ManagerOption func(*GameManager)

func WithPilot(pilot Pilot) ManagerOption {
	return func(gm *GameManager) {
		gm.pilot = pilot
	}
}

func WithManagerLogger(logger *log.Logger) ManagerOption {
	return func(gm *GameManager) {
		if logger != nil {
			gm.logger = logger
		}
	}
}

func NewGameManager(cfg Config, round *Round, opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		DirectionChannel: make(chan Direction, directionBufferSize),
		UpdateChannel:    make(chan tea.Msg, updateBufferSize),
		round:            round,
		initial:          round.Snapshot(),
		tickDuration:     cfg.TickDuration,
		logger:           log.Default(),
		done:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(gm)
	}
	gm.logger = gm.logger.With("round", round.ID.String())
	return gm
}

// InitialSnapshot is the board before the first tick. Safe to call while Run is active.
func (gm *GameManager) InitialSnapshot() Snapshot {
	return gm.initial
}

func (gm *GameManager) Updates() <-chan tea.Msg {
	return gm.UpdateChannel
}

// Done is closed when Run returns. UpdateChannel itself is never closed.
func (gm *GameManager) Done() <-chan struct{} {
	return gm.done
}

// Steer queues a direction for the next tick without blocking. When the
// buffer is full the input is dropped, which only happens if ticks stall.
func (gm *GameManager) Steer(dir Direction) {
	select {
	case gm.DirectionChannel <- dir:
	default:
		gm.logger.Debug("Direction dropped, input buffer full", "direction", dir)
	}
}

// Run ticks the round until it ends or ctx is cancelled. It returns nil when
// the round reaches a terminal state.
func (gm *GameManager) Run(ctx context.Context) error {
	if !gm.isRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer gm.isRunning.Store(false)
	defer gm.doneOnce.Do(func() { close(gm.done) })

	gm.logger.Info("Game loop started.", "tick", gm.tickDuration)

	ticker := time.NewTicker(gm.tickDuration)
	defer ticker.Stop()

	pending := DirNone
	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("Game loop stopped.", "reason", ctx.Err())
			return ctx.Err()
		case dir := <-gm.DirectionChannel:
			if dir != DirNone {
				pending = dir
			}
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			pending = gm.latestDirection(pending)
			over, err := gm.processGameTick(ctx, pending)
			pending = DirNone
			if err != nil {
				gm.logger.Info("Game loop stopped.", "reason", err)
				return err
			}
			if over {
				gm.logger.Info("Game loop finished.", "state", gm.round.State(), "score", gm.round.Score())
				return nil
			}
		}
	}
}

// latestDirection drains queued input so the tick sees the most recent key.
func (gm *GameManager) latestDirection(pending Direction) Direction {
	for {
		select {
		case dir := <-gm.DirectionChannel:
			if dir != DirNone {
				pending = dir
			}
		default:
			return pending
		}
	}
}

func (gm *GameManager) processGameTick(ctx context.Context, input Direction) (bool, error) {
	if gm.pilot != nil {
		dir, err := gm.pilot.NextDirection(gm.round.Snapshot())
		if err != nil {
			gm.logger.Warn("Autopilot failed, keeping heading", "error", err)
			dir = DirNone
		}
		input = dir
	}

	result := gm.round.Tick(input)
	snapshot := gm.round.Snapshot()

	if result.Ate {
		if err := gm.publish(ctx, ScoreChangedMsg{Score: result.Score}); err != nil {
			return false, err
		}
	}
	if err := gm.publish(ctx, GameTickMsg{Snapshot: snapshot}); err != nil {
		return false, err
	}
	if !result.State.IsTerminal() {
		return false, nil
	}
	return true, gm.publish(ctx, RoundOverMsg{Snapshot: snapshot})
}

func (gm *GameManager) publish(ctx context.Context, msg tea.Msg) error {
	select {
	case gm.UpdateChannel <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
