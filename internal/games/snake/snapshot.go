package snake

import (
	"time"

	"github.com/vovakirdan/snakeboy/internal/core"
)

// LevelTransition describes the level-up banner.
type LevelTransition struct {
	Active   bool    `json:"active"`
	Progress float64 `json:"progress"` // 0..1
}

// Snapshot is a read-only view of the session handed to renderers.
type Snapshot struct {
	Frame  uint64 `json:"frame"` // Advance calls since the session was created
	Tick   uint64 `json:"tick"`  // Ticks since the last reset
	Status Status `json:"status"`
	Mode   Mode   `json:"mode"`
	Grid   Grid   `json:"grid"`

	Snake        []core.Point  `json:"snake"`
	Direction    Direction     `json:"direction"`
	SnakeVisible bool          `json:"snake_visible"`
	Shielded     bool          `json:"shielded"`
	WallPass     bool          `json:"wall_pass"`
	Food         FoodItem      `json:"food"`
	FoodPresent  bool          `json:"food_present"`
	FoodFrame    int           `json:"food_frame"`
	PowerUp      PowerUp       `json:"powerup"`
	PowerUpFrame int           `json:"powerup_frame"`
	Effects      ActiveEffects `json:"effects"`
	Obstacles    []core.Point  `json:"obstacles"`

	Score             int             `json:"score"`
	HighScore         int             `json:"high_score"`
	Level             int             `json:"level"`
	PointsToNextLevel int             `json:"points_to_next_level"`
	Transition        LevelTransition `json:"transition"`
	Combo             float64         `json:"combo"`
	TimeRemaining     float64         `json:"time_remaining"` // Seconds, time attack only
	Invulnerable      bool            `json:"invulnerable"`
	Speed             time.Duration   `json:"speed"`
}

// Snapshot returns the current state as of the clock's now.
func (g *Game) Snapshot() Snapshot {
	return g.snapshotAt(g.clock.Now())
}

func (g *Game) snapshotAt(now time.Time) Snapshot {
	food, present := g.food.Item()
	return Snapshot{
		Frame:             g.frame,
		Tick:              g.ticks,
		Status:            g.status,
		Mode:              g.mode,
		Grid:              g.grid,
		Snake:             g.snake.Body(),
		Direction:         g.snake.Direction(),
		SnakeVisible:      g.snake.Visible(now),
		Shielded:          g.snake.Shielded(),
		WallPass:          g.snake.HasWallPass(),
		Food:              food,
		FoodPresent:       present,
		FoodFrame:         g.food.Frame(),
		PowerUp:           g.powerUps.Pickup(),
		PowerUpFrame:      g.powerUps.Frame(),
		Effects:           g.powerUps.Effects(),
		Obstacles:         g.levels.ObstacleList(),
		Score:             g.scores.Score(),
		HighScore:         g.scores.HighScore(),
		Level:             g.levels.Level(),
		PointsToNextLevel: g.levels.PointsToNextLevel(),
		Transition: LevelTransition{
			Active:   g.levels.Transitioning(),
			Progress: g.levels.TransitionProgress(now),
		},
		Combo:         g.combo,
		TimeRemaining: g.timeRemaining,
		Invulnerable:  g.invulnerable,
		Speed:         g.EffectiveSpeed(),
	}
}
