package sound

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

// DefaultVolume is the peak amplitude of a tone.
const DefaultVolume = 0.25

// Player implements snake.Audio with square-wave tones. Cues are dropped
// until Start succeeds.
type Player struct {
	mu      sync.Mutex
	logger  *log.Logger
	buffers map[snake.Cue]*beep.Buffer
	mixer   *beep.Mixer
	muted   bool
	started bool
}

// NewPlayer pre-renders every cue at the given volume (0..1).
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		logger:  logger,
		buffers: renderCues(sampleRate, max(0, min(1, volume))),
		mixer:   &beep.Mixer{},
	}
}

// Start opens the audio device.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("sound: open device: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play mixes the cue's tones into the output.
func (p *Player) Play(c snake.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.muted {
		return
	}
	b, ok := p.buffers[c]
	if !ok {
		p.logger.Debug("no tone for cue", "cue", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(b.Streamer(0, b.Len()))
	speaker.Unlock()
}

// SetMuted turns the tones on or off.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Close stops playback and releases the device.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
	return nil
}
