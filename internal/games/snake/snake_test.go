package snake

import (
	"testing"
	"time"

	"github.com/vovakirdan/snakeboy/internal/core"
)

var testGrid = Grid{Width: 10, Height: 8}

func newTestSnake() *Snake {
	return NewSnake(testGrid, core.Pt(5, 5), 3, 100*time.Millisecond)
}

func TestSnakeInitialLayout(t *testing.T) {
	s := newTestSnake()
	want := []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	body := s.Body()
	if len(body) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(body))
	}
	for i := range want {
		if body[i] != want[i] {
			t.Errorf("segment %d = %v, expected %v", i, body[i], want[i])
		}
	}
	if s.Direction() != DirRight {
		t.Errorf("Expected initial direction right, got %v", s.Direction())
	}
}

func TestSnakeRejectsReversal(t *testing.T) {
	s := newTestSnake()
	if s.SetDirection(DirLeft) {
		t.Error("reversing should be rejected")
	}
	if s.Direction() != DirRight {
		t.Errorf("direction changed to %v", s.Direction())
	}
	if !s.SetDirection(DirUp) || s.Direction() != DirUp {
		t.Error("perpendicular turn should be accepted")
	}
}

func TestSnakeMoveKeepsLength(t *testing.T) {
	s := newTestSnake()
	if !s.Move(false, nil) {
		t.Fatal("move should succeed")
	}
	if s.Head() != core.Pt(6, 5) || s.Len() != 3 {
		t.Errorf("Expected head (6,5) len 3, got %v len %d", s.Head(), s.Len())
	}
	if !s.Move(true, nil) || s.Len() != 4 {
		t.Errorf("growing move should add a segment, len %d", s.Len())
	}
}

func TestSnakeFailedMoveLeavesStateUntouched(t *testing.T) {
	s := newTestSnake()
	s.body = []core.Point{{X: 9, Y: 2}, {X: 8, Y: 2}, {X: 7, Y: 2}}
	before := s.Body()

	if s.Move(false, nil) {
		t.Fatal("moving off the grid without wall pass should fail")
	}
	after := s.Body()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("body mutated by failed move: %v -> %v", before, after)
		}
	}

	s.body = []core.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2}}
	if s.Move(false, NewPointSet([]core.Point{{X: 3, Y: 2}})) {
		t.Error("moving into an obstacle should fail")
	}
}

func TestSnakeTailCellIsFreeUnlessGrowing(t *testing.T) {
	s := newTestSnake()
	// A square loop: head moving down lands on the current tail cell.
	s.body = []core.Point{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 4}, {X: 3, Y: 4}}
	s.direction = DirDown
	if !s.Move(false, nil) {
		t.Fatal("moving into the vacating tail cell should succeed")
	}

	s.body = []core.Point{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 4}, {X: 3, Y: 4}}
	if s.Move(true, nil) {
		t.Error("moving into the tail while growing should fail")
	}
}

func TestSnakeWallPassWrapsOnce(t *testing.T) {
	s := newTestSnake()
	t0 := newManualClock().Now()
	s.body = []core.Point{{X: 9, Y: 2}, {X: 8, Y: 2}, {X: 7, Y: 2}}
	s.ApplyShield(t0, 5*time.Second)

	if !s.Move(false, nil) {
		t.Fatal("wall pass move should succeed")
	}
	if s.Head() != core.Pt(0, 2) {
		t.Errorf("Expected head to wrap to (0,2), got %v", s.Head())
	}
	if s.HasWallPass() {
		t.Error("wall pass should be consumed")
	}
	if !s.Shielded() {
		t.Error("shield tint stays until cleared")
	}

	s.body = []core.Point{{X: 9, Y: 2}, {X: 8, Y: 2}, {X: 7, Y: 2}}
	if s.Move(false, nil) {
		t.Error("second out-of-bounds move should fail")
	}
}

func TestSnakeBlinking(t *testing.T) {
	s := newTestSnake()
	t0 := newManualClock().Now()
	s.StartBlinking(t0, time.Second)

	if !s.Visible(t0) {
		t.Error("first blink phase should be visible")
	}
	if s.Visible(t0.Add(150 * time.Millisecond)) {
		t.Error("second blink phase should be hidden")
	}
	s.UpdateBlinking(t0.Add(999 * time.Millisecond))
	if !s.Blinking() {
		t.Fatal("blink ended early")
	}
	s.UpdateBlinking(t0.Add(time.Second))
	if s.Blinking() || !s.Visible(t0.Add(1150*time.Millisecond)) {
		t.Error("blink should end after its duration")
	}
}

func TestSnakeReset(t *testing.T) {
	s := newTestSnake()
	s.SetDirection(DirUp)
	s.Move(true, nil)
	s.ApplyShield(newManualClock().Now(), time.Second)
	s.Reset()

	if s.Len() != 3 || s.Head() != core.Pt(5, 5) || s.Direction() != DirRight {
		t.Errorf("Reset should restore the initial snake, got %v %v", s.Body(), s.Direction())
	}
	if s.HasWallPass() || s.Shielded() || s.Blinking() {
		t.Error("Reset should clear shield and blinking")
	}
}
