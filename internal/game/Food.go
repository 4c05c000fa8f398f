package game

type Food struct {
	Position Point
	Size     int

	cellSize int
	rng      Rand
}

func NewFood(size int, cellSize int, rng Rand) *Food {
	return &Food{
		Size:     size,
		cellSize: cellSize,
		rng:      rng,
	}
}

// Spawn picks a uniformly random cell and centres the food inside it.
// Cells under the snake are not excluded.
func (f *Food) Spawn(grid Grid) {
	col := f.rng.IntN(grid.Cells)
	row := f.rng.IntN(grid.Cells)

	offset := (grid.CellSize - f.Size) / 2
	f.Position = grid.CellOrigin(col, row).Add(offset, offset)
}

// IsEaten is a box check rather than equality because the food sits offset
// inside its cell while the head is cell-aligned.
func (f *Food) IsEaten(head Point) bool {
	return abs(head.X-f.Position.X) < f.cellSize && abs(head.Y-f.Position.Y) < f.cellSize
}
