package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Validation errors. Use errors.Is to test for them.
var (
	ErrInvalid      = errors.New("config: invalid value")
	ErrGridTooSmall = errors.New("config: grid too small")
)

// LoadSnake loads the Snake Boy configuration.
// Search order: customPath -> ~/.snakeboy/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
// The returned config has been validated.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultSnakeConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultSnakeConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakeboy", "configs", filename)
}

// Marshal renders the config as YAML.
func Marshal(cfg SnakeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// Validate reports configuration and geometry errors. A grid that cannot hold
// the initial snake or the largest maze wall is rejected with ErrGridTooSmall.
func (c SnakeConfig) Validate() error {
	g := c.Grid
	if g.InitialLength < 3 {
		return fmt.Errorf("%w: grid.initial_length must be at least 3, got %d", ErrInvalid, g.InitialLength)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooSmall, g.Width, g.Height)
	}
	tailX := g.StartX - (g.InitialLength - 1)
	if tailX < 0 || g.StartX >= g.Width || g.StartY < 0 || g.StartY >= g.Height {
		return fmt.Errorf("%w: snake of length %d at (%d,%d) does not fit %dx%d",
			ErrGridTooSmall, g.InitialLength, g.StartX, g.StartY, g.Width, g.Height)
	}

	l := c.Levels
	if l.Threshold <= 0 || l.MaxLevel < 1 || l.TransitionMs < 0 {
		return fmt.Errorf("%w: levels need threshold > 0 and max_level >= 1", ErrInvalid)
	}
	if l.MaxWallLength < 1 || l.EdgeMargin < 0 || l.MaxObstacles < 0 {
		return fmt.Errorf("%w: levels obstacle settings", ErrInvalid)
	}
	// The longest wall must fit between both edge margins.
	need := MaxWallLength(l, l.MaxLevel) + 2*l.EdgeMargin
	if g.Width < need || g.Height < need {
		return fmt.Errorf("%w: maze walls need at least %dx%d, got %dx%d",
			ErrGridTooSmall, need, need, g.Width, g.Height)
	}

	s := c.Speed
	if s.MinMs <= 0 || s.InitialMs < s.MinMs || s.MaxMs < s.InitialMs || s.DecrementMs < 0 {
		return fmt.Errorf("%w: speed requires 0 < min_ms <= initial_ms <= max_ms", ErrInvalid)
	}
	if s.BoostFactor <= 0 || s.SlowFactor <= 0 {
		return fmt.Errorf("%w: speed factors must be positive", ErrInvalid)
	}

	f := c.Food
	for _, p := range []float64{f.Regular.Probability, f.Bonus.Probability, f.Special.Probability} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: food probability %v outside [0,1]", ErrInvalid, p)
		}
	}
	if f.Regular.Probability+f.Bonus.Probability > 1 {
		return fmt.Errorf("%w: regular+bonus probability exceeds 1", ErrInvalid)
	}
	if f.AnimationMs <= 0 {
		return fmt.Errorf("%w: food.animation_ms must be positive", ErrInvalid)
	}

	p := c.PowerUps
	if p.SpawnChance < 0 || p.SpawnChance > 1 || p.SpawnAttempts < 0 || p.AnimationMs <= 0 {
		return fmt.Errorf("%w: powerups spawn settings", ErrInvalid)
	}
	if p.ShieldMs <= 0 || p.SpeedBoostMs <= 0 || p.SlowModeMs <= 0 || p.LifetimeMs <= 0 {
		return fmt.Errorf("%w: powerup durations must be positive", ErrInvalid)
	}

	cb := c.Combo
	if cb.WindowMs <= 0 || cb.Increment < 0 || cb.Cap < 1 {
		return fmt.Errorf("%w: combo requires window_ms > 0 and cap >= 1", ErrInvalid)
	}

	if c.Effects.BlinkPeriodMs <= 0 {
		return fmt.Errorf("%w: effects.blink_period_ms must be positive", ErrInvalid)
	}
	return nil
}

// MaxWallLength returns the maze wall length used at the given level:
// min(max_wall_length, 2 + level/2).
func MaxWallLength(l LevelConfig, level int) int {
	return min(l.MaxWallLength, 2+level/2)
}
