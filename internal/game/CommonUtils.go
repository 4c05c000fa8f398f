package game

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// Point is a position in pixel units, aligned to the grid's cells.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// DirectionFromDelta returns DirNone for anything that is not a unit axis step.
func DirectionFromDelta(dx, dy int) Direction {
	for _, dir := range Directions {
		ddx, ddy := dir.Delta()
		if ddx == dx && ddy == dy {
			return dir
		}
	}
	return DirNone
}

// Rand is the slice of math/rand/v2 the round needs. Tests swap in a fixed sequence.
type Rand interface {
	IntN(n int) int
}

// NewEntropyRand seeds a ChaCha8 generator once from the OS entropy source.
func NewEntropyRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand only fails on a broken platform; fall back to the runtime-seeded source
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewChaCha8(seed))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
