package tui

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

func TestBellAudioRingsForLoudCues(t *testing.T) {
	var buf bytes.Buffer
	a := NewBellAudio(&buf, false)

	for _, c := range []snake.Cue{snake.CueMove, snake.CueStart, snake.CueEat, snake.CueGameOver, snake.CuePowerUp, snake.CueLevelUp} {
		a.Play(c)
	}
	if got := buf.String(); got != "\a\a\a\a" {
		t.Errorf("expected 4 bells, got %q", got)
	}
}

func TestBellAudioMuted(t *testing.T) {
	var buf bytes.Buffer
	a := NewBellAudio(&buf, true)
	a.Play(snake.CueEat)
	if buf.Len() != 0 {
		t.Errorf("muted bell wrote %q", buf.String())
	}

	a.SetMuted(false)
	if a.Muted() {
		t.Error("Muted() should be false after SetMuted(false)")
	}
	a.Play(snake.CueEat)
	if buf.String() != "\a" {
		t.Errorf("unmuted bell wrote %q", buf.String())
	}
}

func TestBellAudioNilWriter(t *testing.T) {
	a := NewBellAudio(nil, false)
	a.Play(snake.CueGameOver) // must not panic
}
