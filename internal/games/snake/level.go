package snake

import (
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

// Levels tracks level progression, the level-up transition and the maze
// obstacles.
type Levels struct {
	cfg  config.LevelConfig
	grid Grid
	rng  *rand.Rand

	level        int
	pointsToNext int

	transitioning   bool
	transitionStart time.Time

	obstacles PointSet
}

// NewLevels creates a level manager at level 1.
func NewLevels(cfg config.LevelConfig, grid Grid, rng *rand.Rand) *Levels {
	l := &Levels{cfg: cfg, grid: grid, rng: rng}
	l.Reset()
	return l
}

// Reset returns to level 1 with no obstacles and no transition.
func (l *Levels) Reset() {
	l.level = 1
	l.pointsToNext = l.cfg.Threshold
	l.transitioning = false
	l.transitionStart = time.Time{}
	l.obstacles = PointSet{}
}

// CheckLevelUp reports whether score has reached the next level.
func (l *Levels) CheckLevelUp(score int) bool {
	return score >= l.pointsToNext && l.level < l.cfg.MaxLevel
}

// LevelUp advances one level and starts the transition. The next threshold
// grows by Threshold*newLevel. Obstacles are regenerated in maze mode or from
// ObstacleFromLevel on. Returns false at the maximum level.
func (l *Levels) LevelUp(now time.Time, mode Mode) bool {
	if l.level >= l.cfg.MaxLevel {
		return false
	}
	l.level++
	l.pointsToNext += l.cfg.Threshold * l.level
	l.transitioning = true
	l.transitionStart = now
	if mode == ModeMaze || l.level >= l.cfg.ObstacleFromLevel {
		l.GenerateObstacles(mode)
	}
	return true
}

// GenerateObstacles replaces the obstacle set. Walls exist only in maze mode;
// other modes end up with none. Each wall is a straight run of cells kept
// EdgeMargin away from the top and left edges and far enough from the
// opposite edges to fit.
func (l *Levels) GenerateObstacles(mode Mode) {
	obstacles := PointSet{}
	if mode == ModeMaze {
		count := min(l.cfg.MaxObstacles, l.level*2)
		length := config.MaxWallLength(l.cfg, l.level)
		m := l.cfg.EdgeMargin
		for range count {
			horizontal := l.rng.Float64() > 0.5
			x := randInt(l.rng, m, l.grid.Width-length-m)
			y := randInt(l.rng, m, l.grid.Height-length-m)
			for j := range length {
				if horizontal {
					obstacles.Add(core.Pt(x+j, y))
				} else {
					obstacles.Add(core.Pt(x, y+j))
				}
			}
		}
	}
	l.obstacles = obstacles
}

// ClearObstacles removes any obstacle on the given cells.
func (l *Levels) ClearObstacles(cells PointSet) {
	for p := range cells {
		delete(l.obstacles, p)
	}
}

// HitsObstacle reports whether p is an obstacle cell.
func (l *Levels) HitsObstacle(p core.Point) bool {
	return l.obstacles.Has(p)
}

// Obstacles returns a copy of the obstacle set.
func (l *Levels) Obstacles() PointSet {
	out := make(PointSet, len(l.obstacles))
	for p := range l.obstacles {
		out[p] = struct{}{}
	}
	return out
}

// ObstacleList returns the obstacle cells in row-major order.
func (l *Levels) ObstacleList() []core.Point {
	out := make([]core.Point, 0, len(l.obstacles))
	for p := range l.obstacles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// TransitionProgress returns how far the level-up transition has run, in [0,1].
// It is 0 when no transition is active.
func (l *Levels) TransitionProgress(now time.Time) float64 {
	if !l.transitioning {
		return 0
	}
	d := config.Ms(l.cfg.TransitionMs)
	if d <= 0 {
		return 1
	}
	return core.ClampF(float64(now.Sub(l.transitionStart))/float64(d), 0, 1)
}

// UpdateTransition ends a finished transition. It returns true exactly once
// per transition, on the call that ends it.
func (l *Levels) UpdateTransition(now time.Time) bool {
	if !l.transitioning {
		return false
	}
	if now.Sub(l.transitionStart) < config.Ms(l.cfg.TransitionMs) {
		return false
	}
	l.transitioning = false
	return true
}

// Level returns the current level, starting at 1.
func (l *Levels) Level() int { return l.level }

// PointsToNextLevel returns the score at which the next level is reached.
func (l *Levels) PointsToNextLevel() int { return l.pointsToNext }

// Transitioning reports whether a level-up transition is running.
func (l *Levels) Transitioning() bool { return l.transitioning }
