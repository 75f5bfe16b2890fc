// Package snake implements the Snake Boy engine: a grid snake game with
// food kinds, combos, timed power-ups, levels, maze obstacles and three modes.
//
// The engine never reads the wall clock or sleeps. All timing goes through a
// per-session Scheduler that the host pumps by calling Advance once per
// animation frame.
package snake

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

// Status is the state of the session.
type Status int

const (
	StatusStart Status = iota
	StatusPlaying
	StatusPaused
	StatusLevelUp
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusLevelUp:
		return "levelup"
	case StatusGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Mode is the game mode.
type Mode int

const (
	ModeClassic Mode = iota
	ModeTimeAttack
	ModeMaze
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeTimeAttack:
		return "time_attack"
	case ModeMaze:
		return "maze"
	default:
		return "unknown"
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "CLASSIC"
	case ModeTimeAttack:
		return "TIME ATTACK"
	case ModeMaze:
		return "MAZE"
	default:
		return "?"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Next returns the mode after m: classic, time attack, maze, classic.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	for m := Mode(0); m < modeCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeClassic, fmt.Errorf("snake: unknown mode %q", s)
}

// Options wires a session to its collaborators. Every field is optional.
type Options struct {
	Input    Input
	Renderer Renderer
	Audio    Audio
	Store    HighScoreStore
	Clock    Clock
	Logger   *log.Logger
	Seed     int64 // 0 picks a time-based seed
	Mode     Mode
}

// Game is one Snake Boy session. It is not safe for concurrent use: the host
// calls commands and Advance from a single goroutine.
type Game struct {
	cfg    config.SnakeConfig
	grid   Grid
	clock  Clock
	rng    *rand.Rand
	logger *log.Logger

	input    Input
	renderer Renderer
	audio    Audio

	timers   *Scheduler
	snake    *Snake
	food     *Food
	powerUps *PowerUps
	levels   *Levels
	scores   *Scores

	status        Status
	mode          Mode
	baseSpeed     time.Duration
	combo         float64
	lastFood      time.Time // Zero until the first food of the session
	timeRemaining float64   // Seconds, time attack only
	invulnerable  bool
	pausedAt      time.Time

	frame uint64
	ticks uint64
}

// New creates a session in the start state. The config is validated first.
func New(cfg config.SnakeConfig, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snake: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		grid:     Grid{Width: cfg.Grid.Width, Height: cfg.Grid.Height},
		clock:    opts.Clock,
		logger:   opts.Logger,
		input:    opts.Input,
		renderer: opts.Renderer,
		audio:    opts.Audio,
		mode:     opts.Mode,
		timers:   NewScheduler(),
	}
	if g.clock == nil {
		g.clock = SystemClock()
	}
	if g.logger == nil {
		g.logger = discardLogger()
	}
	if g.audio == nil {
		g.audio = NopAudio{}
	}
	if g.input == nil {
		g.input = &DirectionQueue{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.snake = NewSnake(g.grid, core.Pt(cfg.Grid.StartX, cfg.Grid.StartY), cfg.Grid.InitialLength,
		config.Ms(cfg.Effects.BlinkPeriodMs))
	g.food = NewFood(cfg.Food, g.grid, g.rng)
	g.powerUps = NewPowerUps(cfg.PowerUps, g.grid, g.rng, g.timers)
	g.powerUps.OnExpire(g.effectExpired)
	g.levels = NewLevels(cfg.Levels, g.grid, g.rng)
	g.scores = NewScores(opts.Store, g.logger)
	g.scores.Load()

	g.resetState()
	return g, nil
}

// Start begins a session from the start or game-over screen. A finished
// session is reset first.
func (g *Game) Start() {
	now := g.clock.Now()
	switch g.status {
	case StatusStart:
	case StatusGameOver:
		g.Reset()
	default:
		return
	}

	g.status = StatusPlaying
	g.baseSpeed = config.Ms(g.cfg.Speed.InitialMs)
	g.combo = 1
	g.setupMode()
	g.play(CueStart)
	g.logger.Debug("session started", "mode", g.mode, "high", g.scores.HighScore())
	g.startLoop(now)
}

// StartPause is the START button: start, pause or resume depending on status.
func (g *Game) StartPause() {
	switch g.status {
	case StatusStart, StatusGameOver:
		g.Start()
	case StatusPlaying, StatusPaused:
		g.TogglePause()
	}
}

// TogglePause pauses a running session or resumes a paused one. Every armed
// timer is frozen while paused and resumes with the time it had left.
func (g *Game) TogglePause() {
	now := g.clock.Now()
	switch g.status {
	case StatusPlaying:
		g.status = StatusPaused
		g.stopLoop()
		g.timers.Freeze(now)
		g.pausedAt = now
	case StatusPaused:
		g.status = StatusPlaying
		paused := now.Sub(g.pausedAt)
		g.timers.Thaw(now)
		g.powerUps.Shift(paused)
		if !g.lastFood.IsZero() {
			g.lastFood = g.lastFood.Add(paused)
		}
		g.pausedAt = time.Time{}
		g.startLoop(now)
	}
}

// CycleMode selects the next mode. Only allowed on the start screen.
func (g *Game) CycleMode() {
	if g.status != StatusStart {
		return
	}
	g.mode = g.mode.Next()
	g.play(CueMove)
}

// Reset cancels every timer, restores all components and returns to the
// start screen. The mode and high score are kept.
func (g *Game) Reset() {
	g.timers.CancelAll()
	g.snake.Reset()
	g.powerUps.Reset()
	g.scores.ResetScore()
	g.levels.Reset()
	if r, ok := g.input.(interface{ Reset() }); ok {
		safeCall(g.logger, "input reset", r.Reset)
	}
	g.resetState()
	g.play(CueMove)
}

func (g *Game) resetState() {
	g.status = StatusStart
	g.baseSpeed = config.Ms(g.cfg.Speed.InitialMs)
	g.combo = 1
	g.lastFood = time.Time{}
	g.timeRemaining = 0
	g.invulnerable = false
	g.pausedAt = time.Time{}
	g.ticks = 0
	g.placeFood()
}

// ActivateSpeedBoost is the A button ability. It needs a running session
// with no effect active.
func (g *Game) ActivateSpeedBoost() {
	if g.status != StatusPlaying || g.powerUps.HasActiveEffect() {
		return
	}
	now := g.clock.Now()
	g.powerUps.Activate(PowerUpSpeedBoost, now)
	g.play(CuePowerUp)
	g.restartLoop(now)
}

// ActivateShield is the B button ability. It needs a running session with
// no effect active.
func (g *Game) ActivateShield() {
	if g.status != StatusPlaying || g.powerUps.HasActiveEffect() {
		return
	}
	now := g.clock.Now()
	g.powerUps.Activate(PowerUpShield, now)
	g.applyShield(now)
	g.play(CuePowerUp)
}

// ActivateCheat makes the snake invulnerable for a while. Failed moves are
// ignored instead of ending the session.
func (g *Game) ActivateCheat() {
	if g.invulnerable {
		return
	}
	now := g.clock.Now()
	d := config.Ms(g.cfg.Effects.CheatMs)
	g.invulnerable = true
	g.snake.StartBlinking(now, d)
	g.play(CuePowerUp)
	g.play(CueStart)
	g.logger.Info("cheat activated", "duration", d)
	g.timers.After(timerCheat, now, d, func(time.Time) {
		g.invulnerable = false
	})
}

// Advance pumps the session to the current time: due timers fire in deadline
// order, animations step, and the renderer receives a fresh snapshot.
func (g *Game) Advance() {
	now := g.clock.Now()
	g.timers.RunDue(now)

	g.food.Animate(now)
	g.powerUps.Animate(now)
	g.snake.UpdateBlinking(now)
	if g.levels.UpdateTransition(now) && g.status == StatusLevelUp {
		g.status = StatusPlaying
		g.startLoop(now)
	}

	g.frame++
	if g.renderer != nil {
		snap := g.snapshotAt(now)
		safeCall(g.logger, "render", func() { g.renderer.Render(snap) })
	}
}

// EffectiveSpeed returns the current tick interval: the base speed adjusted
// by speed boost or slow mode and clamped to the configured range.
func (g *Game) EffectiveSpeed() time.Duration {
	s := g.cfg.Speed
	ms := float64(g.baseSpeed) / float64(time.Millisecond)
	fx := g.powerUps.Effects()
	if fx.SpeedBoost {
		ms = max(float64(s.MinMs), ms*s.BoostFactor)
	}
	if fx.SlowMode {
		ms = min(float64(s.MaxMs), ms*s.SlowFactor)
	}
	ms = core.ClampF(ms, float64(s.MinMs), float64(s.MaxMs))
	return time.Duration(ms * float64(time.Millisecond))
}

func (g *Game) startLoop(now time.Time) {
	g.timers.After(timerTick, now, g.EffectiveSpeed(), g.onTick)
}

func (g *Game) stopLoop() {
	g.timers.Cancel(timerTick)
}

// restartLoop re-arms the tick with the current interval.
func (g *Game) restartLoop(now time.Time) {
	g.stopLoop()
	if g.status == StatusPlaying {
		g.startLoop(now)
	}
}

// effectExpired re-arms the tick when a speed effect ends, so the interval
// changes at once rather than after the pending tick.
func (g *Game) effectExpired(kind PowerUpKind, at time.Time) {
	switch kind {
	case PowerUpSpeedBoost, PowerUpSlowMode:
		g.restartLoop(at)
	case PowerUpShield:
	}
}

func (g *Game) onTick(at time.Time) {
	g.update(at)
	if g.status == StatusPlaying && !g.timers.Pending(timerTick) {
		g.startLoop(at)
	}
}

// update runs one tick.
func (g *Game) update(now time.Time) {
	if g.status != StatusPlaying {
		return
	}
	g.ticks++

	dir := g.snake.Direction()
	safeCall(g.logger, "input", func() { dir = g.input.PendingDirection(dir) })
	g.snake.SetDirection(dir)

	// Food is detected at the head before the move, so the snake grows on
	// the tick after it reaches the food cell.
	willEat := g.food.IsAt(g.snake.Head())

	if !g.snake.Move(willEat, g.levels.Obstacles()) && !g.invulnerable {
		g.gameOver(now)
		return
	}

	if g.powerUps.IsAt(g.snake.Head(), now) {
		if kind, ok := g.powerUps.Collect(now); ok {
			switch kind {
			case PowerUpShield:
				g.applyShield(now)
			case PowerUpSpeedBoost, PowerUpSlowMode:
				// Picked up by the tick re-arm below.
			}
			g.play(CuePowerUp)
			g.scores.AddPoints(g.cfg.PowerUps.BonusPoints)
			g.logger.Debug("power-up collected", "kind", kind)
		}
	}

	if willEat {
		g.eat(now)
	}

	if g.mode == ModeTimeAttack {
		g.timeRemaining -= g.EffectiveSpeed().Seconds()
		if g.timeRemaining <= 0 {
			g.timeRemaining = 0
			g.gameOver(now)
		}
	}
}

func (g *Game) eat(now time.Time) {
	item, _ := g.food.Item()
	g.play(CueEat)
	g.updateCombo(now)
	g.scores.AddPoints(int(math.Round(float64(item.Value) * g.combo)))

	if g.levels.CheckLevelUp(g.scores.Score()) {
		g.levelUp(now)
	} else {
		g.placeFood()
		g.increaseSpeed(now)
		next, _ := g.food.Item()
		g.powerUps.TrySpawn(now, NewPointSet(g.snake.Body(), g.levels.ObstacleList()), next.Position)
	}

	if g.mode == ModeTimeAttack {
		g.timeRemaining += g.cfg.Modes.TimeAttackBonusSec
	}
}

// updateCombo raises the multiplier when food follows food within the window
// and resets it otherwise. The multiplier also drops back to 1 once the
// window passes with nothing eaten.
func (g *Game) updateCombo(now time.Time) {
	c := g.cfg.Combo
	window := config.Ms(c.WindowMs)
	if !g.lastFood.IsZero() && now.Sub(g.lastFood) < window {
		g.combo = min(c.Cap, g.combo+c.Increment)
	} else {
		g.combo = 1
	}
	g.lastFood = now
	g.timers.After(timerCombo, now, window, func(time.Time) {
		g.combo = 1
	})
}

func (g *Game) increaseSpeed(now time.Time) {
	s := g.cfg.Speed
	g.baseSpeed = max(config.Ms(s.MinMs), g.baseSpeed-config.Ms(s.DecrementMs))
	g.restartLoop(now)
}

func (g *Game) levelUp(now time.Time) {
	g.stopLoop()
	if !g.levels.LevelUp(now, g.mode) {
		return
	}
	g.status = StatusLevelUp
	g.secureObstacles()
	g.placeFood()
	g.play(CueLevelUp)
	g.logger.Debug("level up", "level", g.levels.Level(), "next", g.levels.PointsToNextLevel())
}

func (g *Game) gameOver(now time.Time) {
	g.status = StatusGameOver
	g.stopLoop()
	g.timers.Cancel(timerCombo)
	g.combo = 1
	g.play(CueGameOver)
	g.snake.StartBlinking(now, config.Ms(g.cfg.Effects.GameOverBlinkMs))
	g.logger.Info("game over", "score", g.scores.Score(), "level", g.levels.Level(), "mode", g.mode)
}

func (g *Game) applyShield(now time.Time) {
	d := config.Ms(g.cfg.PowerUps.ShieldMs)
	g.snake.ApplyShield(now, d)
	g.timers.After(timerWallPass, now, d, func(time.Time) {
		g.snake.ClearShield()
	})
}

func (g *Game) setupMode() {
	switch g.mode {
	case ModeTimeAttack:
		g.timeRemaining = g.cfg.Modes.TimeAttackStartSec
	case ModeMaze:
		g.levels.GenerateObstacles(g.mode)
		g.secureObstacles()
		g.placeFood()
	case ModeClassic:
	}
}

// secureObstacles removes freshly generated walls that would trap the snake:
// any wall on its body, on the lane just ahead of its head or under the pickup.
func (g *Game) secureObstacles() {
	keep := NewPointSet(g.snake.Body())
	dx, dy := g.snake.Direction().Delta()
	p := g.snake.Head()
	for range g.cfg.Levels.SafeLaneAheadCells {
		p = p.Add(dx, dy)
		if !g.grid.Contains(p) {
			break
		}
		keep.Add(p)
	}
	if pu := g.powerUps.Pickup(); pu.Active {
		keep.Add(pu.Position)
	}
	g.levels.ClearObstacles(keep)
}

// placeFood puts new food on a cell free of the snake, the obstacles and the pickup.
func (g *Game) placeFood() {
	occupied := NewPointSet(g.snake.Body(), g.levels.ObstacleList())
	if pu := g.powerUps.Pickup(); pu.Active {
		occupied.Add(pu.Position)
	}
	if !g.food.Place(occupied, g.levels.Level()) {
		g.logger.Warn("no free cell for food", "snake", g.snake.Len())
	}
}

func (g *Game) play(c Cue) {
	safeCall(g.logger, "audio", func() { g.audio.Play(c) })
}

// Status returns the session status.
func (g *Game) Status() Status { return g.status }

// Mode returns the selected mode.
func (g *Game) Mode() Mode { return g.mode }

// Score returns the session score.
func (g *Game) Score() int { return g.scores.Score() }

// HighScore returns the best score.
func (g *Game) HighScore() int { return g.scores.HighScore() }

// Level returns the current level.
func (g *Game) Level() int { return g.levels.Level() }

// Combo returns the score multiplier.
func (g *Game) Combo() float64 { return g.combo }

// BaseSpeed returns the tick interval before effects.
func (g *Game) BaseSpeed() time.Duration { return g.baseSpeed }

// TimeRemaining returns the time attack countdown in seconds.
func (g *Game) TimeRemaining() float64 { return g.timeRemaining }

// Invulnerable reports whether the cheat is active.
func (g *Game) Invulnerable() bool { return g.invulnerable }

// Config returns the session configuration.
func (g *Game) Config() config.SnakeConfig { return g.cfg }
