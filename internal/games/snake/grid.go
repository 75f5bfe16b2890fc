package snake

import (
	"math/rand"

	"github.com/vovakirdan/snakeboy/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit vector of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
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
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Grid is the bounded playfield, [0,Width) x [0,Height).
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Wrap maps p onto the grid modulo its extent.
func (g Grid) Wrap(p core.Point) core.Point {
	return core.Point{X: core.Mod(p.X, g.Width), Y: core.Mod(p.Y, g.Height)}
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// RandomCell returns a uniformly random cell.
func (g Grid) RandomCell(rng *rand.Rand) core.Point {
	return core.Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
}

// FreeCells lists every cell not in occupied, in row-major order.
func (g Grid) FreeCells(occupied PointSet) []core.Point {
	free := make([]core.Point, 0, g.Cells()-len(occupied))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := core.Point{X: x, Y: y}
			if !occupied.Has(p) {
				free = append(free, p)
			}
		}
	}
	return free
}

// PointSet is a set of grid cells.
type PointSet map[core.Point]struct{}

// NewPointSet builds a set from any number of point slices.
func NewPointSet(groups ...[]core.Point) PointSet {
	s := make(PointSet)
	for _, g := range groups {
		for _, p := range g {
			s[p] = struct{}{}
		}
	}
	return s
}

// Has reports whether p is in the set. A nil set is empty.
func (s PointSet) Has(p core.Point) bool {
	_, ok := s[p]
	return ok
}

// Add inserts p into the set.
func (s PointSet) Add(p core.Point) {
	s[p] = struct{}{}
}

// randInt returns a random integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
