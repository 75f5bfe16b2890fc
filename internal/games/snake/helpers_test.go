package snake

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordAudio struct {
	cues []Cue
}

func (a *recordAudio) Play(c Cue) { a.cues = append(a.cues, c) }

func (a *recordAudio) has(c Cue) bool {
	for _, got := range a.cues {
		if got == c {
			return true
		}
	}
	return false
}

type memStore struct {
	score int
	ok    bool
	saves int
	err   error
}

func (m *memStore) LoadHighScore() (int, bool, error) { return m.score, m.ok, m.err }

func (m *memStore) SaveHighScore(v int) error {
	if m.err != nil {
		return m.err
	}
	m.score, m.ok = v, true
	m.saves++
	return nil
}

var errStoreDown = errors.New("store down")

type testRig struct {
	game  *Game
	clock *manualClock
	audio *recordAudio
	input *DirectionQueue
	store *memStore
}

// newTestGame builds a seeded session with power-up spawning off so that
// ticks are predictable.
func newTestGame(t *testing.T, mutate func(*config.SnakeConfig)) *testRig {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	cfg.PowerUps.SpawnChance = 0
	if mutate != nil {
		mutate(&cfg)
	}
	rig := &testRig{
		clock: newManualClock(),
		audio: &recordAudio{},
		input: &DirectionQueue{},
		store: &memStore{},
	}
	g, err := New(cfg, Options{
		Input: rig.input,
		Audio: rig.audio,
		Store: rig.store,
		Clock: rig.clock,
		Seed:  42,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rig.game = g
	return rig
}

// step moves the clock by d and pumps the session.
func (r *testRig) step(d time.Duration) {
	r.clock.Advance(d)
	r.game.Advance()
}

// tick advances exactly one tick interval.
func (r *testRig) tick() {
	r.step(r.game.EffectiveSpeed())
}

func (r *testRig) setFood(p core.Point, value int) {
	r.game.food.item = FoodItem{Position: p, Kind: FoodRegular, Value: value}
	r.game.food.present = true
}

func (r *testRig) setBody(pts ...core.Point) {
	r.game.snake.body = append([]core.Point(nil), pts...)
}
