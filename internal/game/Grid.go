package game

// Grid is the square playing field. It never changes after a round starts.
type Grid struct {
	CellSize  int
	Cells     int
	Thickness int
	MarginX   int
	MarginY   int
}

func (g Grid) FieldW() int { return g.Cells * g.CellSize }
func (g Grid) FieldH() int { return g.Cells * g.CellSize }

func (g Grid) OuterX() int { return g.MarginX }
func (g Grid) OuterY() int { return g.MarginY }

// InnerX and InnerY are the top-left corner of the playable area, inside the border.
func (g Grid) InnerX() int { return g.OuterX() + g.Thickness }
func (g Grid) InnerY() int { return g.OuterY() + g.Thickness }

func (g Grid) CellCount() int { return g.Cells * g.Cells }

func (g Grid) IsInGrid(x, y int) bool {
	return x >= g.InnerX() && y >= g.InnerY() &&
		x < g.InnerX()+g.FieldW() && y < g.InnerY()+g.FieldH()
}

// CellOrigin returns the top-left pixel of the cell at (col, row).
func (g Grid) CellOrigin(col, row int) Point {
	return Point{
		X: g.InnerX() + col*g.CellSize,
		Y: g.InnerY() + row*g.CellSize,
	}
}

// CellOf maps a pixel position back to the cell containing it. ok is false
// when the position is outside the playable area.
func (g Grid) CellOf(p Point) (col, row int, ok bool) {
	if !g.IsInGrid(p.X, p.Y) {
		return 0, 0, false
	}
	return (p.X - g.InnerX()) / g.CellSize, (p.Y - g.InnerY()) / g.CellSize, true
}
