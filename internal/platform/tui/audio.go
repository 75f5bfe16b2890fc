package tui

import (
	"io"
	"sync"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

// BellAudio plays the louder cues as a terminal bell. Movement and start
// cues stay silent.
type BellAudio struct {
	mu    sync.Mutex
	w     io.Writer
	muted bool
}

// NewBellAudio creates a bell player writing to w.
func NewBellAudio(w io.Writer, muted bool) *BellAudio {
	return &BellAudio{w: w, muted: muted}
}

// Play rings the bell for eat, power-up, level-up and game-over cues.
func (a *BellAudio) Play(c snake.Cue) {
	switch c {
	case snake.CueEat, snake.CuePowerUp, snake.CueLevelUp, snake.CueGameOver:
	default:
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.muted || a.w == nil {
		return
	}
	//nolint:errcheck // A lost bell is not worth reporting
	a.w.Write([]byte{'\a'})
}

// SetMuted turns the bell on or off.
func (a *BellAudio) SetMuted(muted bool) {
	a.mu.Lock()
	a.muted = muted
	a.mu.Unlock()
}

// Muted reports whether the bell is off.
func (a *BellAudio) Muted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.muted
}
