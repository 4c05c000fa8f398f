package game

import (
	"io"

	"github.com/charmbracelet/log"
)

// fixedRand replays a sequence of values, wrapping around, and clamps each to n.
type fixedRand struct {
	values []int
	next   int
}

func (f *fixedRand) IntN(n int) int {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v % n
}

type countingSound struct {
	plays int
}

func (c *countingSound) Play(Sound) { c.plays++ }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestRound places the food in the bottom-right cell, away from the start.
func newTestRound(cfg Config, opts ...RoundOption) *Round {
	base := []RoundOption{
		WithLogger(quietLogger()),
		WithRand(&fixedRand{values: []int{cfg.Cells - 1}}),
	}
	return NewRound(cfg, append(base, opts...)...)
}
