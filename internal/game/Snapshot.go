package game

import "github.com/google/uuid"

// Snapshot is a read-only copy of a round after a tick, handed to renderers.
type Snapshot struct {
	RoundID   uuid.UUID
	Tick      int
	Grid      Grid
	Head      Point
	Body      []Point
	Direction Direction
	Food      Point
	FoodSize  int
	Score     int
	State     RoundState
}

// Occupant is what a renderer draws in a single cell.
type Occupant int

const (
	OccupantEmpty Occupant = iota
	OccupantFood
	OccupantBody
	OccupantHead
)

// Cells rasterises the snapshot into a row-major Cells x Cells matrix.
// The head wins over body and body over food when they share a cell.
func (s Snapshot) Cells() [][]Occupant {
	cells := make([][]Occupant, s.Grid.Cells)
	for row := range cells {
		cells[row] = make([]Occupant, s.Grid.Cells)
	}

	mark := func(p Point, o Occupant) {
		col, row, ok := s.Grid.CellOf(p)
		if ok && cells[row][col] < o {
			cells[row][col] = o
		}
	}

	mark(s.Food, OccupantFood)
	for _, segment := range s.Body {
		mark(segment, OccupantBody)
	}
	mark(s.Head, OccupantHead)

	return cells
}

// HeadCell and FoodCell return cell indices; the head may be off-grid after a loss.
func (s Snapshot) HeadCell() (col, row int, ok bool) {
	return s.Grid.CellOf(s.Head)
}

func (s Snapshot) FoodCell() (col, row int, ok bool) {
	return s.Grid.CellOf(s.Food)
}
