// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the Snake Boy engine.
package config

import "time"

// SnakeConfig contains every tunable constant of the game. None of it is
// runtime input: it is read once when a session is created.
type SnakeConfig struct {
	Grid     GridConfig    `yaml:"grid"`
	Speed    SpeedConfig   `yaml:"speed"`
	Food     FoodConfig    `yaml:"food"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Levels   LevelConfig   `yaml:"levels"`
	Combo    ComboConfig   `yaml:"combo"`
	Modes    ModesConfig   `yaml:"modes"`
	Effects  EffectsConfig `yaml:"effects"`
	Display  DisplayConfig `yaml:"display"`
}

// GridConfig defines the playfield and the snake's starting placement.
type GridConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	StartX        int `yaml:"start_x"` // Head position on reset
	StartY        int `yaml:"start_y"`
	InitialLength int `yaml:"initial_length"`
}

// SpeedConfig defines the tick interval model, in milliseconds.
type SpeedConfig struct {
	InitialMs   int     `yaml:"initial_ms"`
	MinMs       int     `yaml:"min_ms"`
	MaxMs       int     `yaml:"max_ms"`       // Ceiling applied to slowed-down ticks
	DecrementMs int     `yaml:"decrement_ms"` // Applied per food eaten
	BoostFactor float64 `yaml:"boost_factor"` // Interval multiplier while speed boost is active
	SlowFactor  float64 `yaml:"slow_factor"`  // Interval multiplier while slow mode is active
}

// FoodType is the value and base probability of one food kind.
type FoodType struct {
	Value       int     `yaml:"value"`
	Probability float64 `yaml:"probability"`
}

// FoodConfig defines food values and the level-weighted kind selection.
type FoodConfig struct {
	Regular        FoodType `yaml:"regular"`
	Bonus          FoodType `yaml:"bonus"`
	Special        FoodType `yaml:"special"`
	LevelBonusStep float64  `yaml:"level_bonus_step"` // Regular band shrink per level above 1
	LevelBonusCap  float64  `yaml:"level_bonus_cap"`
	AnimationMs    int      `yaml:"animation_ms"`
}

// PowerUpConfig defines power-up spawning and effect durations.
type PowerUpConfig struct {
	SpawnChance   float64 `yaml:"spawn_chance"`
	SpawnAttempts int     `yaml:"spawn_attempts"`
	LifetimeMs    int     `yaml:"lifetime_ms"` // Collection window on the grid
	ShieldMs      int     `yaml:"shield_ms"`
	SpeedBoostMs  int     `yaml:"speed_boost_ms"`
	SlowModeMs    int     `yaml:"slow_mode_ms"`
	BonusPoints   int     `yaml:"bonus_points"`
	AnimationMs   int     `yaml:"animation_ms"`
}

// LevelConfig defines level progression and the maze obstacles.
type LevelConfig struct {
	Threshold          int `yaml:"threshold"`
	MaxLevel           int `yaml:"max_level"`
	TransitionMs       int `yaml:"transition_ms"`
	ObstacleFromLevel  int `yaml:"obstacle_from_level"`
	MaxObstacles       int `yaml:"max_obstacles"`
	MaxWallLength      int `yaml:"max_wall_length"`
	EdgeMargin         int `yaml:"edge_margin"`
	SafeLaneAheadCells int `yaml:"safe_lane_ahead_cells"` // Cells ahead of the head kept free of new walls
}

// ComboConfig defines the score multiplier.
type ComboConfig struct {
	WindowMs  int     `yaml:"window_ms"`
	Increment float64 `yaml:"increment"`
	Cap       float64 `yaml:"cap"`
}

// ModesConfig holds mode-specific tuning.
type ModesConfig struct {
	TimeAttackStartSec float64 `yaml:"time_attack_start_sec"`
	TimeAttackBonusSec float64 `yaml:"time_attack_bonus_sec"`
}

// EffectsConfig holds blink and cheat timings.
type EffectsConfig struct {
	BlinkPeriodMs   int `yaml:"blink_period_ms"`
	GameOverBlinkMs int `yaml:"game_over_blink_ms"`
	CheatMs         int `yaml:"cheat_ms"`
}

// DisplayConfig holds renderer hints.
type DisplayConfig struct {
	CellWidth int  `yaml:"cell_width"` // Terminal columns per grid cell
	ShowGrid  bool `yaml:"show_grid"`
}

// Ms converts a millisecond count from the config into a Duration.
func Ms(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplySnakePreset adjusts speeds for a difficulty preset.
// Unknown or empty presets leave the config unchanged.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialMs = 190
		cfg.Speed.MinMs = 90
		cfg.Speed.DecrementMs = 2
	case DifficultyHard:
		cfg.Speed.InitialMs = 110
		cfg.Speed.MinMs = 50
		cfg.Speed.DecrementMs = 4
	}
}
