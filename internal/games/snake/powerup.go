package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
)

// PowerUpKind is both the pickup kind and the effect it grants.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpSpeedBoost
	PowerUpSlowMode
	powerUpKinds
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpSpeedBoost:
		return "speed_boost"
	case PowerUpSlowMode:
		return "slow_mode"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k PowerUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// powerUpFrames is the length of the pickup animation cycle.
const powerUpFrames = 4

// PowerUp is the collectible on the grid.
type PowerUp struct {
	Position  core.Point  `json:"position"`
	Kind      PowerUpKind `json:"kind"`
	Active    bool        `json:"active"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ActiveEffects reports which effects are running and when each ends.
type ActiveEffects struct {
	Shield          bool      `json:"shield"`
	SpeedBoost      bool      `json:"speed_boost"`
	SlowMode        bool      `json:"slow_mode"`
	ShieldUntil     time.Time `json:"shield_until"`
	SpeedBoostUntil time.Time `json:"speed_boost_until"`
	SlowModeUntil   time.Time `json:"slow_mode_until"`
}

// Any reports whether at least one effect is running.
func (e ActiveEffects) Any() bool {
	return e.Shield || e.SpeedBoost || e.SlowMode
}

// PowerUps owns the pickup on the grid and the timed effects. Effect expiry
// goes through the session scheduler so a reset cancels it.
type PowerUps struct {
	cfg    config.PowerUpConfig
	grid   Grid
	rng    *rand.Rand
	timers *Scheduler

	pickup  PowerUp
	effects ActiveEffects

	frame     int
	lastFrame time.Time

	onExpire func(kind PowerUpKind, at time.Time)
}

// NewPowerUps creates a power-up manager with no pickup and no effects.
func NewPowerUps(cfg config.PowerUpConfig, grid Grid, rng *rand.Rand, timers *Scheduler) *PowerUps {
	return &PowerUps{cfg: cfg, grid: grid, rng: rng, timers: timers}
}

// OnExpire registers fn to run when an effect runs out on its own. It is not
// called when an effect is replaced or reset.
func (p *PowerUps) OnExpire(fn func(kind PowerUpKind, at time.Time)) {
	p.onExpire = fn
}

// Reset removes the pickup and every effect, cancelling their timers.
func (p *PowerUps) Reset() {
	p.pickup = PowerUp{}
	p.effects = ActiveEffects{}
	p.frame = 0
	p.lastFrame = time.Time{}
	for k := PowerUpKind(0); k < powerUpKinds; k++ {
		p.timers.Cancel(effectTimer(k))
	}
}

// TrySpawn attempts to place a pickup. Nothing spawns while one is already
// on the grid or when the spawn roll fails. Up to SpawnAttempts random cells
// are tried; cells in occupied and the food cell are skipped.
func (p *PowerUps) TrySpawn(now time.Time, occupied PointSet, food core.Point) bool {
	if p.pickup.Active {
		return false
	}
	if p.rng.Float64() > p.cfg.SpawnChance {
		return false
	}
	for range p.cfg.SpawnAttempts {
		pos := p.grid.RandomCell(p.rng)
		if pos == food || occupied.Has(pos) {
			continue
		}
		p.pickup = PowerUp{
			Position:  pos,
			Kind:      PowerUpKind(p.rng.Intn(int(powerUpKinds))),
			Active:    true,
			ExpiresAt: now.Add(config.Ms(p.cfg.LifetimeMs)),
		}
		return true
	}
	return false
}

// IsAt reports whether a pickup sits on pos and has not expired by now.
func (p *PowerUps) IsAt(pos core.Point, now time.Time) bool {
	return p.available(now) && p.pickup.Position == pos
}

// Collect takes the pickup and starts its effect. An expired pickup is
// removed instead.
func (p *PowerUps) Collect(now time.Time) (PowerUpKind, bool) {
	if !p.available(now) {
		p.pickup.Active = false
		return 0, false
	}
	kind := p.pickup.Kind
	p.pickup.Active = false
	p.Activate(kind, now)
	return kind, true
}

// Activate starts an effect for its configured duration. Re-activating a
// running effect restarts its timer. Speed boost and slow mode cancel each other.
func (p *PowerUps) Activate(kind PowerUpKind, now time.Time) {
	until := now.Add(p.Duration(kind))
	switch kind {
	case PowerUpShield:
		p.effects.Shield = true
		p.effects.ShieldUntil = until
	case PowerUpSpeedBoost:
		p.expire(PowerUpSlowMode)
		p.effects.SpeedBoost = true
		p.effects.SpeedBoostUntil = until
	case PowerUpSlowMode:
		p.expire(PowerUpSpeedBoost)
		p.effects.SlowMode = true
		p.effects.SlowModeUntil = until
	}
	p.timers.Schedule(effectTimer(kind), until, func(at time.Time) {
		p.expire(kind)
		if p.onExpire != nil {
			p.onExpire(kind, at)
		}
	})
}

func (p *PowerUps) available(now time.Time) bool {
	return p.pickup.Active && now.Before(p.pickup.ExpiresAt)
}

func (p *PowerUps) expire(kind PowerUpKind) {
	switch kind {
	case PowerUpShield:
		p.effects.Shield = false
		p.effects.ShieldUntil = time.Time{}
	case PowerUpSpeedBoost:
		p.effects.SpeedBoost = false
		p.effects.SpeedBoostUntil = time.Time{}
	case PowerUpSlowMode:
		p.effects.SlowMode = false
		p.effects.SlowModeUntil = time.Time{}
	}
	p.timers.Cancel(effectTimer(kind))
}

// Duration returns how long an effect lasts.
func (p *PowerUps) Duration(kind PowerUpKind) time.Duration {
	switch kind {
	case PowerUpShield:
		return config.Ms(p.cfg.ShieldMs)
	case PowerUpSpeedBoost:
		return config.Ms(p.cfg.SpeedBoostMs)
	case PowerUpSlowMode:
		return config.Ms(p.cfg.SlowModeMs)
	default:
		return 0
	}
}

// Animate advances the pickup animation and removes an expired pickup.
func (p *PowerUps) Animate(now time.Time) {
	if p.lastFrame.IsZero() {
		p.lastFrame = now
	} else if now.Sub(p.lastFrame) > config.Ms(p.cfg.AnimationMs) {
		p.frame = (p.frame + 1) % powerUpFrames
		p.lastFrame = now
	}
	if p.pickup.Active && !now.Before(p.pickup.ExpiresAt) {
		p.pickup.Active = false
	}
}

// Shift moves the pickup deadline by d, used when the session resumes from pause.
func (p *PowerUps) Shift(d time.Duration) {
	if p.pickup.Active {
		p.pickup.ExpiresAt = p.pickup.ExpiresAt.Add(d)
	}
	shift := func(t *time.Time) {
		if !t.IsZero() {
			*t = t.Add(d)
		}
	}
	shift(&p.effects.ShieldUntil)
	shift(&p.effects.SpeedBoostUntil)
	shift(&p.effects.SlowModeUntil)
}

// HasActiveEffect reports whether any effect is running.
func (p *PowerUps) HasActiveEffect() bool { return p.effects.Any() }

// Effects returns the running effects.
func (p *PowerUps) Effects() ActiveEffects { return p.effects }

// Pickup returns the pickup state. Check Active before using it.
func (p *PowerUps) Pickup() PowerUp { return p.pickup }

// Frame returns the animation frame, 0..3.
func (p *PowerUps) Frame() int { return p.frame }

func effectTimer(kind PowerUpKind) timerID {
	switch kind {
	case PowerUpSpeedBoost:
		return timerSpeedBoost
	case PowerUpSlowMode:
		return timerSlowMode
	default:
		return timerShieldEffect
	}
}
