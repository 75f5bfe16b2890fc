package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake Boy configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:         25, // 400px canvas / 16px cells
			Height:        22, // 360px canvas / 16px cells
			StartX:        5,
			StartY:        5,
			InitialLength: 3,
		},
		Speed: SpeedConfig{
			InitialMs:   150,
			MinMs:       60,
			MaxMs:       300,
			DecrementMs: 3,
			BoostFactor: 0.5,
			SlowFactor:  1.5,
		},
		Food: FoodConfig{
			Regular:        FoodType{Value: 10, Probability: 0.7},
			Bonus:          FoodType{Value: 20, Probability: 0.2},
			Special:        FoodType{Value: 50, Probability: 0.1},
			LevelBonusStep: 0.03,
			LevelBonusCap:  0.3,
			AnimationMs:    200,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:   0.1,
			SpawnAttempts: 20,
			LifetimeMs:    10000,
			ShieldMs:      5000,
			SpeedBoostMs:  3000,
			SlowModeMs:    5000,
			BonusPoints:   20,
			AnimationMs:   150,
		},
		Levels: LevelConfig{
			Threshold:          50,
			MaxLevel:           10,
			TransitionMs:       1500,
			ObstacleFromLevel:  3,
			MaxObstacles:       10,
			MaxWallLength:      6,
			EdgeMargin:         2,
			SafeLaneAheadCells: 3,
		},
		Combo: ComboConfig{
			WindowMs:  3000,
			Increment: 0.5,
			Cap:       5.0,
		},
		Modes: ModesConfig{
			TimeAttackStartSec: 30,
			TimeAttackBonusSec: 3,
		},
		Effects: EffectsConfig{
			BlinkPeriodMs:   100,
			GameOverBlinkMs: 3000,
			CheatMs:         10000,
		},
		Display: DisplayConfig{
			CellWidth: 2,
			ShowGrid:  false,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
