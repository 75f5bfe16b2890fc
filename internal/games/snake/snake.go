package snake

import (
	"time"

	"github.com/vovakirdan/snakeboy/internal/core"
)

// Snake is the player-controlled body. The head is at index 0 and the body is
// never empty.
type Snake struct {
	grid          Grid
	start         core.Point
	initialLength int
	blinkPeriod   time.Duration

	body      []core.Point
	direction Direction

	wallPass bool // Consumed by the first out-of-bounds move
	shielded bool

	blinking   bool
	blinkStart time.Time
	blinkUntil time.Time
}

// NewSnake creates a snake laid out horizontally to the left of start, facing right.
func NewSnake(grid Grid, start core.Point, length int, blinkPeriod time.Duration) *Snake {
	s := &Snake{
		grid:          grid,
		start:         start,
		initialLength: length,
		blinkPeriod:   blinkPeriod,
	}
	s.Reset()
	return s
}

// Reset restores the initial body and direction and clears shield and blinking.
func (s *Snake) Reset() {
	s.body = make([]core.Point, s.initialLength)
	for i := range s.body {
		s.body[i] = s.start.Add(-i, 0)
	}
	s.direction = DirRight
	s.wallPass = false
	s.shielded = false
	s.blinking = false
	s.blinkStart = time.Time{}
	s.blinkUntil = time.Time{}
}

// SetDirection changes the heading unless d reverses it.
// Returns false when the change was rejected.
func (s *Snake) SetDirection(d Direction) bool {
	if d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Move advances the head one cell. The tail is kept when grow is set.
// A move that would leave the grid without wall pass, hit the body or land on
// an obstacle returns false and leaves the snake untouched. Leaving the grid
// with wall pass wraps to the opposite edge and consumes the ability.
func (s *Snake) Move(grow bool, obstacles PointSet) bool {
	dx, dy := s.direction.Delta()
	head := s.body[0].Add(dx, dy)

	wrapped := false
	if !s.grid.Contains(head) {
		if !s.wallPass {
			return false
		}
		head = s.grid.Wrap(head)
		wrapped = true
	}

	// The tail vacates its cell this tick unless we grow.
	check := s.body
	if !grow {
		check = s.body[:len(s.body)-1]
	}
	for _, p := range check {
		if p == head {
			return false
		}
	}
	if obstacles.Has(head) {
		return false
	}

	n := len(s.body)
	if grow {
		n++
	}
	body := make([]core.Point, n)
	body[0] = head
	copy(body[1:], s.body)
	s.body = body

	if wrapped {
		s.wallPass = false
	}
	return true
}

// ApplyShield grants one wall pass, tints the snake and starts blinking for d.
// The caller schedules ClearShield.
func (s *Snake) ApplyShield(now time.Time, d time.Duration) {
	s.wallPass = true
	s.shielded = true
	s.StartBlinking(now, d)
}

// ClearShield revokes the shield tint and any unused wall pass.
func (s *Snake) ClearShield() {
	s.wallPass = false
	s.shielded = false
}

// StartBlinking makes the snake blink until now+d. An active blink is only
// ever extended.
func (s *Snake) StartBlinking(now time.Time, d time.Duration) {
	until := now.Add(d)
	if s.blinking {
		if until.After(s.blinkUntil) {
			s.blinkUntil = until
		}
		return
	}
	s.blinking = true
	s.blinkStart = now
	s.blinkUntil = until
}

// UpdateBlinking ends the blink once its window has passed.
func (s *Snake) UpdateBlinking(now time.Time) {
	if s.blinking && !now.Before(s.blinkUntil) {
		s.blinking = false
	}
}

// Visible reports whether the snake should be drawn at now.
// While blinking it alternates every blink period.
func (s *Snake) Visible(now time.Time) bool {
	if !s.blinking || s.blinkPeriod <= 0 {
		return true
	}
	phase := now.Sub(s.blinkStart) / s.blinkPeriod
	return phase%2 == 0
}

// IsHeadAt reports whether the head occupies p.
func (s *Snake) IsHeadAt(p core.Point) bool {
	return s.body[0] == p
}

// Occupies reports whether any segment occupies p.
func (s *Snake) Occupies(p core.Point) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

// Head returns the head cell.
func (s *Snake) Head() core.Point { return s.body[0] }

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Point {
	out := make([]core.Point, len(s.body))
	copy(out, s.body)
	return out
}

// Len returns the number of segments.
func (s *Snake) Len() int { return len(s.body) }

// Direction returns the current heading.
func (s *Snake) Direction() Direction { return s.direction }

// HasWallPass reports whether the next out-of-bounds move will wrap.
func (s *Snake) HasWallPass() bool { return s.wallPass }

// Shielded reports whether the shield tint is on.
func (s *Snake) Shielded() bool { return s.shielded }

// Blinking reports whether a blink window is active.
func (s *Snake) Blinking() bool { return s.blinking }
