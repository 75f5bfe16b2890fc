package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

// FoodKind is the kind of food on the grid.
type FoodKind int

const (
	FoodRegular FoodKind = iota
	FoodBonus
	FoodSpecial
)

func (k FoodKind) String() string {
	switch k {
	case FoodRegular:
		return "regular"
	case FoodBonus:
		return "bonus"
	case FoodSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k FoodKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// foodFrames is the length of the food animation cycle.
const foodFrames = 4

// FoodItem is a placed piece of food.
type FoodItem struct {
	Position core.Point `json:"position"`
	Kind     FoodKind   `json:"kind"`
	Value    int        `json:"value"`
}

// Food owns the single food item on the grid.
type Food struct {
	cfg  config.FoodConfig
	grid Grid
	rng  *rand.Rand

	item    FoodItem
	present bool

	frame     int
	lastFrame time.Time
}

// NewFood creates a food manager with nothing placed.
func NewFood(cfg config.FoodConfig, grid Grid, rng *rand.Rand) *Food {
	return &Food{cfg: cfg, grid: grid, rng: rng}
}

// Place puts a new item on a uniformly chosen free cell and draws its kind
// for the given level. Returns false, leaving no food, when every cell is
// occupied.
func (f *Food) Place(occupied PointSet, level int) bool {
	free := f.grid.FreeCells(occupied)
	if len(free) == 0 {
		f.present = false
		return false
	}
	pos := free[f.rng.Intn(len(free))]
	kind := f.chooseKind(f.rng.Float64(), level)
	f.item = FoodItem{Position: pos, Kind: kind, Value: f.valueOf(kind)}
	f.present = true
	return true
}

// chooseKind maps a uniform draw in [0,1) to a kind. Higher levels shrink the
// regular band, shifting its mass to special food.
func (f *Food) chooseKind(r float64, level int) FoodKind {
	bonus := min(f.cfg.LevelBonusCap, float64(level-1)*f.cfg.LevelBonusStep)
	switch {
	case r < f.cfg.Regular.Probability-bonus:
		return FoodRegular
	case r < f.cfg.Regular.Probability+f.cfg.Bonus.Probability:
		return FoodBonus
	default:
		return FoodSpecial
	}
}

func (f *Food) valueOf(k FoodKind) int {
	switch k {
	case FoodBonus:
		return f.cfg.Bonus.Value
	case FoodSpecial:
		return f.cfg.Special.Value
	default:
		return f.cfg.Regular.Value
	}
}

// Animate advances the 4-frame cycle once per animation period.
func (f *Food) Animate(now time.Time) {
	if f.lastFrame.IsZero() {
		f.lastFrame = now
		return
	}
	if now.Sub(f.lastFrame) > config.Ms(f.cfg.AnimationMs) {
		f.frame = (f.frame + 1) % foodFrames
		f.lastFrame = now
	}
}

// IsAt reports whether food sits on p.
func (f *Food) IsAt(p core.Point) bool {
	return f.present && f.item.Position == p
}

// Item returns the placed item and whether there is one.
func (f *Food) Item() (FoodItem, bool) { return f.item, f.present }

// Frame returns the animation frame, 0..3.
func (f *Food) Frame() int { return f.frame }
