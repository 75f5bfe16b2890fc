package snake

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Input supplies the direction for the next tick. The simplest input keeps
// only the latest request; DirectionQueue buffers a short sequence instead.
type Input interface {
	// PendingDirection returns the next requested direction, or current
	// when nothing is queued.
	PendingDirection(current Direction) Direction
}

// Renderer receives a snapshot after every Advance.
type Renderer interface {
	Render(s Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s Snapshot)

// Render calls f(s).
func (f RendererFunc) Render(s Snapshot) { f(s) }

// MultiRenderer fans a snapshot out to several renderers.
type MultiRenderer []Renderer

// Render passes s to every renderer in order.
func (m MultiRenderer) Render(s Snapshot) {
	for _, r := range m {
		r.Render(s)
	}
}

// Cue names a sound effect.
type Cue int

const (
	CueMove Cue = iota
	CueEat
	CueGameOver
	CueStart
	CuePowerUp
	CueLevelUp
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueEat:
		return "eat"
	case CueGameOver:
		return "gameOver"
	case CueStart:
		return "start"
	case CuePowerUp:
		return "powerUp"
	case CueLevelUp:
		return "levelUp"
	default:
		return "unknown"
	}
}

// Audio plays sound cues. Implementations must not block.
type Audio interface {
	Play(c Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play does nothing.
func (NopAudio) Play(Cue) {}

// maxQueuedTurns bounds the direction queue.
const maxQueuedTurns = 3

// DirectionQueue buffers direction requests between ticks so that quick
// successive turns are all honored, one per tick.
type DirectionQueue struct {
	queue []Direction
}

// Push queues d. Requests that repeat or reverse the last queued direction
// are dropped, as are requests beyond the queue limit.
func (q *DirectionQueue) Push(d Direction) bool {
	if n := len(q.queue); n > 0 {
		last := q.queue[n-1]
		if d == last || d == last.Opposite() {
			return false
		}
	}
	if len(q.queue) >= maxQueuedTurns {
		return false
	}
	q.queue = append(q.queue, d)
	return true
}

// PendingDirection pops the oldest request, or returns current when none is
// queued. This is not latest-wins: two turns pressed within one tick apply on
// consecutive ticks instead of the second overwriting the first.
func (q *DirectionQueue) PendingDirection(current Direction) Direction {
	if len(q.queue) == 0 {
		return current
	}
	d := q.queue[0]
	q.queue = q.queue[1:]
	return d
}

// Len returns the number of queued requests.
func (q *DirectionQueue) Len() int { return len(q.queue) }

// Reset drops every queued request.
func (q *DirectionQueue) Reset() { q.queue = q.queue[:0] }

// safeCall runs a collaborator call, turning a panic into a logged error so
// that a broken renderer or store never takes the session down.
func safeCall(logger *log.Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("collaborator failed", "call", what, "err", fmt.Sprint(r))
		}
	}()
	fn()
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
