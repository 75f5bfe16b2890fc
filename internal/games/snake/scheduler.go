package snake

import "time"

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// timerID names a slot in the scheduler table. Each slot holds at most one
// pending callback; scheduling into an occupied slot replaces it.
type timerID int

const (
	timerTick timerID = iota
	timerCombo
	timerShieldEffect
	timerSpeedBoost
	timerSlowMode
	timerWallPass
	timerCheat
	timerCount
)

func (id timerID) String() string {
	switch id {
	case timerTick:
		return "tick"
	case timerCombo:
		return "combo"
	case timerShieldEffect:
		return "shield"
	case timerSpeedBoost:
		return "speed_boost"
	case timerSlowMode:
		return "slow_mode"
	case timerWallPass:
		return "wall_pass"
	case timerCheat:
		return "cheat"
	default:
		return "unknown"
	}
}

type timerEntry struct {
	at        time.Time
	fn        func(at time.Time)
	active    bool
	frozen    bool
	remaining time.Duration
}

// Scheduler is the session's timer table. Nothing fires on its own: the owner
// pumps it with RunDue, which makes every timer cancellable and deterministic
// under a manual clock.
type Scheduler struct {
	entries [timerCount]timerEntry
}

// NewScheduler creates an empty timer table.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arms the slot to call fn at the given deadline, replacing any
// pending callback in that slot.
func (s *Scheduler) Schedule(id timerID, at time.Time, fn func(at time.Time)) {
	s.entries[id] = timerEntry{at: at, fn: fn, active: true}
}

// After arms the slot to fire d after now.
func (s *Scheduler) After(id timerID, now time.Time, d time.Duration, fn func(at time.Time)) {
	s.Schedule(id, now.Add(d), fn)
}

// Cancel disarms a slot. Cancelling an idle slot is a no-op.
func (s *Scheduler) Cancel(id timerID) {
	s.entries[id] = timerEntry{}
}

// CancelAll disarms every slot.
func (s *Scheduler) CancelAll() {
	for i := range s.entries {
		s.entries[i] = timerEntry{}
	}
}

// Pending reports whether the slot holds a callback, frozen or not.
func (s *Scheduler) Pending(id timerID) bool {
	return s.entries[id].active
}

// Deadline returns when the slot fires. Frozen slots report false.
func (s *Scheduler) Deadline(id timerID) (time.Time, bool) {
	e := s.entries[id]
	if !e.active || e.frozen {
		return time.Time{}, false
	}
	return e.at, true
}

// Remaining returns how long until the slot fires, measured from now.
// Frozen slots report the remaining time captured when they were frozen.
func (s *Scheduler) Remaining(id timerID, now time.Time) time.Duration {
	e := s.entries[id]
	switch {
	case !e.active:
		return 0
	case e.frozen:
		return e.remaining
	default:
		return max(0, e.at.Sub(now))
	}
}

// Freeze suspends every armed slot, remembering the time left on each.
// Slots scheduled after Freeze run normally.
func (s *Scheduler) Freeze(now time.Time) {
	for i := range s.entries {
		e := &s.entries[i]
		if !e.active || e.frozen {
			continue
		}
		e.remaining = max(0, e.at.Sub(now))
		e.frozen = true
	}
}

// Thaw resumes frozen slots with the time they had left.
func (s *Scheduler) Thaw(now time.Time) {
	for i := range s.entries {
		e := &s.entries[i]
		if !e.active || !e.frozen {
			continue
		}
		e.at = now.Add(e.remaining)
		e.frozen = false
		e.remaining = 0
	}
}

// RunDue fires every slot whose deadline is at or before now, earliest first
// (ties go to the lower slot). A callback receives its own deadline and may
// schedule or cancel any slot, including its own; newly due callbacks run in
// the same pass. Returns the number of callbacks fired.
func (s *Scheduler) RunDue(now time.Time) int {
	fired := 0
	for {
		id, ok := s.nextDue(now)
		if !ok {
			return fired
		}
		e := s.entries[id]
		s.entries[id] = timerEntry{}
		e.fn(e.at)
		fired++
	}
}

func (s *Scheduler) nextDue(now time.Time) (timerID, bool) {
	best := timerID(-1)
	for i := range s.entries {
		e := &s.entries[i]
		if !e.active || e.frozen || e.at.After(now) {
			continue
		}
		if best < 0 || e.at.Before(s.entries[best].at) {
			best = timerID(i)
		}
	}
	return best, best >= 0
}
