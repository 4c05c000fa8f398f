package game

// Snake owns the head, the trailing body and the heading.
// Body[0] is the most recent previous head position.
type Snake struct {
	Head  Point
	Body  []Point
	Speed int

	direction Direction
}

func NewSnake(head Point, speed int, dir Direction) *Snake {
	return &Snake{
		Head:      head,
		Body:      []Point{},
		Speed:     speed,
		direction: dir,
	}
}

func (s *Snake) Direction() Direction {
	return s.direction
}

// SetDirection applies a new heading unless it is DirNone or would turn the
// snake back onto itself. It reports whether the heading changed.
func (s *Snake) SetDirection(dir Direction) bool {
	if dir == DirNone || dir == s.direction {
		return false
	}
	if dir == s.direction.Opposite() {
		return false
	}
	s.direction = dir
	return true
}

// Advance moves every segment onto its predecessor, then steps the head one cell.
func (s *Snake) Advance() {
	if len(s.Body) > 0 {
		for i := len(s.Body) - 1; i > 0; i-- {
			s.Body[i] = s.Body[i-1]
		}
		s.Body[0] = s.Head
	}

	dx, dy := s.direction.Delta()
	s.Head = s.Head.Add(dx*s.Speed, dy*s.Speed)
}

// Grow appends a segment on top of the current tail. It starts moving on the next Advance.
func (s *Snake) Grow() {
	if len(s.Body) == 0 {
		s.Body = append(s.Body, s.Head)
		return
	}
	s.Body = append(s.Body, s.Body[len(s.Body)-1])
}

func (s *Snake) CollidesWithSelf() bool {
	for _, segment := range s.Body {
		if segment == s.Head {
			return true
		}
	}
	return false
}

func (s *Snake) Length() int {
	return len(s.Body)
}
