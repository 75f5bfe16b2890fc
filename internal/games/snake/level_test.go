package snake

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
)

func newTestLevels(seed int64) *Levels {
	cfg := config.DefaultSnakeConfig()
	grid := Grid{Width: cfg.Grid.Width, Height: cfg.Grid.Height}
	return NewLevels(cfg.Levels, grid, rand.New(rand.NewSource(seed)))
}

func TestLevelThresholds(t *testing.T) {
	l := newTestLevels(1)
	t0 := newManualClock().Now()

	if l.CheckLevelUp(49) {
		t.Error("49 points should not level up")
	}
	if !l.CheckLevelUp(50) {
		t.Fatal("50 points should level up")
	}

	wantNext := []int{150, 300, 500}
	for i, want := range wantNext {
		if !l.LevelUp(t0, ModeClassic) {
			t.Fatalf("LevelUp %d failed", i)
		}
		if l.PointsToNextLevel() != want {
			t.Errorf("after level %d, next threshold %d, expected %d", l.Level(), l.PointsToNextLevel(), want)
		}
	}
}

func TestLevelCappedAtMax(t *testing.T) {
	l := newTestLevels(1)
	t0 := newManualClock().Now()
	for l.Level() < 10 {
		if !l.LevelUp(t0, ModeClassic) {
			t.Fatalf("LevelUp failed at level %d", l.Level())
		}
	}
	if l.LevelUp(t0, ModeClassic) {
		t.Error("LevelUp past the max level should fail")
	}
	if l.CheckLevelUp(1 << 30) {
		t.Error("CheckLevelUp should be false at the max level")
	}
	if l.Level() != 10 {
		t.Errorf("level = %d, expected 10", l.Level())
	}
}

func TestObstaclesOnlyInMaze(t *testing.T) {
	l := newTestLevels(3)
	for range 3 {
		l.LevelUp(newManualClock().Now(), ModeClassic)
	}
	if len(l.Obstacles()) != 0 {
		t.Errorf("classic mode should have no obstacles, got %d", len(l.Obstacles()))
	}
}

func TestMazeObstaclesRespectMargins(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	for seed := int64(1); seed <= 30; seed++ {
		l := newTestLevels(seed)
		for lvl := 1; lvl <= cfg.Levels.MaxLevel; lvl++ {
			l.level = lvl
			l.GenerateObstacles(ModeMaze)
			obs := l.Obstacles()
			if len(obs) == 0 {
				t.Fatalf("seed %d level %d: maze should have walls", seed, lvl)
			}
			maxCells := min(cfg.Levels.MaxObstacles, lvl*2) * config.MaxWallLength(cfg.Levels, lvl)
			if len(obs) > maxCells {
				t.Errorf("seed %d level %d: %d cells exceeds %d", seed, lvl, len(obs), maxCells)
			}
			m := cfg.Levels.EdgeMargin
			for p := range obs {
				if p.X < m || p.Y < m || p.X > cfg.Grid.Width-m-1 || p.Y > cfg.Grid.Height-m-1 {
					t.Fatalf("seed %d level %d: obstacle %v outside margins", seed, lvl, p)
				}
			}
		}
	}
}

func TestClearObstacles(t *testing.T) {
	l := newTestLevels(5)
	l.GenerateObstacles(ModeMaze)
	list := l.ObstacleList()
	if len(list) == 0 {
		t.Fatal("expected obstacles")
	}
	l.ClearObstacles(NewPointSet(list[:1]))
	if l.HitsObstacle(list[0]) {
		t.Error("cleared cell is still an obstacle")
	}
}

func TestLevelTransition(t *testing.T) {
	l := newTestLevels(1)
	t0 := newManualClock().Now()
	if l.TransitionProgress(t0) != 0 {
		t.Error("no transition should report 0 progress")
	}

	l.LevelUp(t0, ModeClassic)
	if p := l.TransitionProgress(t0.Add(750 * time.Millisecond)); p < 0.49 || p > 0.51 {
		t.Errorf("progress at half time = %v, expected 0.5", p)
	}
	if l.UpdateTransition(t0.Add(1499 * time.Millisecond)) {
		t.Fatal("transition ended early")
	}
	if !l.UpdateTransition(t0.Add(1500 * time.Millisecond)) {
		t.Fatal("transition should end at 1500ms")
	}
	if l.UpdateTransition(t0.Add(2 * time.Second)) {
		t.Error("UpdateTransition should report the end only once")
	}
}
