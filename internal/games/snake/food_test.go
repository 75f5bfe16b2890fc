package snake

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

func newTestFood(grid Grid) *Food {
	return NewFood(config.DefaultSnakeConfig().Food, grid, rand.New(rand.NewSource(1)))
}

func TestFoodChooseKind(t *testing.T) {
	f := newTestFood(testGrid)
	tests := []struct {
		r     float64
		level int
		want  FoodKind
	}{
		{0.0, 1, FoodRegular},
		{0.69, 1, FoodRegular},
		{0.71, 1, FoodBonus},
		{0.89, 1, FoodBonus},
		{0.91, 1, FoodSpecial},
		// Level 5 shrinks the regular band to 0.58.
		{0.6, 5, FoodBonus},
		{0.95, 5, FoodSpecial},
		// The shrink is capped at 0.3.
		{0.45, 20, FoodBonus},
		{0.39, 20, FoodRegular},
	}
	for _, tc := range tests {
		if got := f.chooseKind(tc.r, tc.level); got != tc.want {
			t.Errorf("chooseKind(%v, %d) = %v, expected %v", tc.r, tc.level, got, tc.want)
		}
	}
}

func TestFoodPlaceAvoidsOccupied(t *testing.T) {
	grid := Grid{Width: 4, Height: 3}
	f := newTestFood(grid)
	occupied := NewPointSet([]core.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2},
	})

	for range 50 {
		if !f.Place(occupied, 1) {
			t.Fatal("Place should succeed while cells are free")
		}
		item, ok := f.Item()
		if !ok || occupied.Has(item.Position) || !grid.Contains(item.Position) {
			t.Fatalf("food placed on %v", item.Position)
		}
	}
}

func TestFoodPlaceOnFullGrid(t *testing.T) {
	grid := Grid{Width: 2, Height: 1}
	f := newTestFood(grid)
	if f.Place(NewPointSet([]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}), 1) {
		t.Fatal("Place should fail on a full grid")
	}
	if _, ok := f.Item(); ok {
		t.Error("no food should be present after a failed placement")
	}
}

func TestFoodValues(t *testing.T) {
	f := newTestFood(testGrid)
	for kind, want := range map[FoodKind]int{FoodRegular: 10, FoodBonus: 20, FoodSpecial: 50} {
		if got := f.valueOf(kind); got != want {
			t.Errorf("value of %v = %d, expected %d", kind, got, want)
		}
	}
}

func TestFoodAnimate(t *testing.T) {
	f := newTestFood(testGrid)
	t0 := newManualClock().Now()
	f.Animate(t0)
	f.Animate(t0.Add(200 * time.Millisecond))
	if f.Frame() != 0 {
		t.Errorf("frame should advance only after more than 200ms, got %d", f.Frame())
	}
	now := t0
	for i := 1; i <= 4; i++ {
		now = now.Add(201 * time.Millisecond)
		f.Animate(now)
		if f.Frame() != i%4 {
			t.Errorf("step %d: frame %d, expected %d", i, f.Frame(), i%4)
		}
	}
}
