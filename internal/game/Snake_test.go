package game

import "testing"

func TestSetDirectionRejectsReversal(t *testing.T) {
	snake := NewSnake(Point{X: 100, Y: 100}, 20, DirRight)

	if snake.SetDirection(DirLeft) {
		t.Errorf("Expected Left to be rejected while heading Right")
	}
	if snake.Direction() != DirRight {
		t.Errorf("Expected heading to stay Right, got %s", snake.Direction())
	}

	if snake.SetDirection(DirNone) {
		t.Errorf("Expected no input to keep the heading")
	}

	if !snake.SetDirection(DirUp) {
		t.Errorf("Expected Up to be accepted while heading Right")
	}
	if snake.SetDirection(DirDown) {
		t.Errorf("Expected Down to be rejected while heading Up")
	}
	if snake.Direction() != DirUp {
		t.Errorf("Expected heading Up, got %s", snake.Direction())
	}
}

func TestAdvanceShiftsBody(t *testing.T) {
	snake := NewSnake(Point{X: 100, Y: 100}, 20, DirRight)
	snake.Body = []Point{{X: 80, Y: 100}, {X: 60, Y: 100}, {X: 60, Y: 80}}

	before := append([]Point(nil), snake.Body...)
	head := snake.Head

	snake.Advance()

	if snake.Body[0] != head {
		t.Errorf("Expected first segment to be the old head %v, got %v", head, snake.Body[0])
	}
	for i := 1; i < len(snake.Body); i++ {
		if snake.Body[i] != before[i-1] {
			t.Errorf("Segment %d: expected %v, got %v", i, before[i-1], snake.Body[i])
		}
	}
	if snake.Head != (Point{X: 120, Y: 100}) {
		t.Errorf("Expected head to move one cell right, got %v", snake.Head)
	}
}

func TestAdvanceWithEmptyBody(t *testing.T) {
	snake := NewSnake(Point{X: 100, Y: 100}, 20, DirDown)
	snake.Advance()

	if snake.Length() != 0 {
		t.Errorf("Expected empty body, got %d segments", snake.Length())
	}
	if snake.Head != (Point{X: 100, Y: 120}) {
		t.Errorf("Expected head at (100,120), got %v", snake.Head)
	}
}

func TestGrow(t *testing.T) {
	snake := NewSnake(Point{X: 100, Y: 100}, 20, DirRight)

	snake.Grow()
	if snake.Length() != 1 || snake.Body[0] != snake.Head {
		t.Fatalf("Expected first growth to copy the head, got %v", snake.Body)
	}

	snake.Advance()
	snake.Grow()
	if snake.Length() != 2 {
		t.Fatalf("Expected 2 segments, got %d", snake.Length())
	}
	if snake.Body[1] != snake.Body[0] {
		t.Errorf("Expected new tail to overlap its neighbour, got %v", snake.Body)
	}

	snake.Advance()
	if snake.Body[1] == snake.Body[0] {
		t.Errorf("Expected new tail to separate after an advance, got %v", snake.Body)
	}
}

func TestCollidesWithSelf(t *testing.T) {
	snake := NewSnake(Point{X: 100, Y: 100}, 20, DirRight)
	if snake.CollidesWithSelf() {
		t.Errorf("Expected no collision with an empty body")
	}

	snake.Body = []Point{{X: 80, Y: 100}, {X: 100, Y: 101}}
	if snake.CollidesWithSelf() {
		t.Errorf("Expected exact equality only, a one pixel offset is not a hit")
	}

	snake.Body = append(snake.Body, Point{X: 100, Y: 100})
	if !snake.CollidesWithSelf() {
		t.Errorf("Expected collision when the head sits on a segment")
	}
}

func TestBodyLengthMatchesGrowCalls(t *testing.T) {
	snake := NewSnake(Point{X: 0, Y: 0}, 20, DirRight)
	for i := 1; i <= 10; i++ {
		snake.Grow()
		snake.Advance()
		if snake.Length() != i {
			t.Fatalf("After %d grows expected length %d, got %d", i, i, snake.Length())
		}
	}
}
