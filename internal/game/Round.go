package game

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type RoundState int

const (
	StatePlaying RoundState = iota
	StateLost
	StateWon
)

func (s RoundState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	}
	return "unknown"
}

func (s RoundState) IsTerminal() bool {
	return s == StateLost || s == StateWon
}

// TickResult describes what a single Tick changed.
type TickResult struct {
	Ate   bool
	Score int
	State RoundState
}

// Round is one playthrough. It owns every piece of mutable game state;
// nothing about it is shared outside the goroutine that ticks it.
type Round struct {
	ID   uuid.UUID
	Grid Grid

	snake *Snake
	food  *Food
	score int
	state RoundState
	ticks int

	sound  SoundPlayer
	logger *log.Logger
	rng    Rand
}

type RoundOption func(*Round)

func WithSound(sound SoundPlayer) RoundOption {
	return func(r *Round) {
		if sound != nil {
			r.sound = sound
		}
	}
}

func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRand(rng Rand) RoundOption {
	return func(r *Round) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// NewRound lays out the starting snake, a head with one segment behind it
// heading right, and spawns the first food. cfg is assumed to be valid.
func NewRound(cfg Config, opts ...RoundOption) *Round {
	r := &Round{
		ID:    uuid.New(),
		Grid:  cfg.Grid(),
		state: StatePlaying,
		sound: NopSound{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = NewEntropyRand()
	}
	if r.logger == nil {
		r.logger = log.With("round", r.ID.String())
	} else {
		r.logger = r.logger.With("round", r.ID.String())
	}

	head := r.Grid.CellOrigin(cfg.StartCol, cfg.StartRow)
	r.snake = NewSnake(head, r.Grid.CellSize, DirRight)
	r.snake.Body = append(r.snake.Body, head.Add(-r.Grid.CellSize, 0))

	r.food = NewFood(cfg.FoodSize, r.Grid.CellSize, r.rng)
	r.food.Spawn(r.Grid)

	r.logger.Debug("Round started", "head", head, "food", r.food.Position, "cells", r.Grid.Cells)
	return r
}

// Tick runs one simulation step. Once the round is over it does nothing.
func (r *Round) Tick(input Direction) TickResult {
	if r.state.IsTerminal() {
		return r.result(false)
	}
	r.ticks++

	r.snake.SetDirection(input)
	r.snake.Advance()

	head := r.snake.Head
	switch {
	case !r.Grid.IsInGrid(head.X, head.Y):
		r.finish(StateLost, "left the grid")
	case r.snake.CollidesWithSelf():
		r.finish(StateLost, "hit itself")
	case r.snake.Length() >= r.Grid.CellCount()-1:
		r.finish(StateWon, "board full")
	}

	if r.state != StatePlaying || !r.food.IsEaten(head) {
		return r.result(false)
	}

	r.sound.Play(SoundCollect)
	r.snake.Grow()
	r.food.Spawn(r.Grid)
	r.score++
	r.logger.Info("Snake ate food", "score", r.score)

	return r.result(true)
}

func (r *Round) finish(state RoundState, reason string) {
	r.state = state
	r.logger.Info("Round over", "state", state, "reason", reason, "score", r.score, "ticks", r.ticks)
}

func (r *Round) result(ate bool) TickResult {
	return TickResult{Ate: ate, Score: r.score, State: r.state}
}

func (r *Round) Score() int        { return r.score }
func (r *Round) State() RoundState { return r.state }
func (r *Round) Ticks() int        { return r.ticks }

// Snapshot copies the state the renderer needs. The body slice is not shared.
func (r *Round) Snapshot() Snapshot {
	body := make([]Point, len(r.snake.Body))
	copy(body, r.snake.Body)

	return Snapshot{
		RoundID:   r.ID,
		Tick:      r.ticks,
		Grid:      r.Grid,
		Head:      r.snake.Head,
		Body:      body,
		Direction: r.snake.Direction(),
		Food:      r.food.Position,
		FoodSize:  r.food.Size,
		Score:     r.score,
		State:     r.state,
	}
}
