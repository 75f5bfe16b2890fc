// Package sound plays the handheld's square-wave sound effects through the
// system audio device.
package sound

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

const (
	sampleRate = beep.SampleRate(44100)
	attack     = 10 * time.Millisecond
)

// note is one square-wave tone of a cue.
type note struct {
	freq float64
	at   time.Duration // Offset from the start of the cue
	dur  time.Duration
}

func scale(freqs []float64, step, dur time.Duration) []note {
	notes := make([]note, len(freqs))
	for i, f := range freqs {
		notes[i] = note{freq: f, at: time.Duration(i) * step, dur: dur}
	}
	return notes
}

var cueNotes = map[snake.Cue][]note{
	snake.CueMove: {{freq: 150, dur: 50 * time.Millisecond}},
	snake.CueEat: {
		{freq: 300, dur: 100 * time.Millisecond},
		{freq: 450, at: 100 * time.Millisecond, dur: 100 * time.Millisecond},
	},
	snake.CueGameOver: scale([]float64{400, 350, 300, 250}, 150*time.Millisecond, 200*time.Millisecond),
	snake.CueStart:    scale([]float64{300, 400, 500, 600}, 100*time.Millisecond, 100*time.Millisecond),
	snake.CuePowerUp:  scale([]float64{600, 800}, 100*time.Millisecond, 100*time.Millisecond),
	snake.CueLevelUp:  scale([]float64{400, 500, 600, 700, 800}, 80*time.Millisecond, 100*time.Millisecond),
}

// synth renders notes into mono samples at the given peak volume. Each note
// ramps up over the attack and then fades linearly to silence.
func synth(sr beep.SampleRate, notes []note, volume float64) []float64 {
	var total time.Duration
	for _, n := range notes {
		total = max(total, n.at+n.dur)
	}
	buf := make([]float64, sr.N(total))

	rise := sr.N(attack)
	for _, n := range notes {
		start, length := sr.N(n.at), sr.N(n.dur)
		phase, inc := 0.0, n.freq/float64(sr)
		for i := 0; i < length && start+i < len(buf); i++ {
			v := 1.0
			if phase >= 0.5 {
				v = -1.0
			}
			env := float64(length-i) / float64(length-rise)
			if i < rise {
				env = float64(i) / float64(rise)
			}
			buf[start+i] += v * volume * min(1, env)

			phase += inc
			if phase >= 1 {
				phase--
			}
		}
	}

	for i, v := range buf {
		buf[i] = max(-1, min(1, v))
	}
	return buf
}

// monoStreamer plays mono samples on both channels.
func monoStreamer(data []float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if len(data) == 0 {
			return 0, false
		}
		n := min(len(samples), len(data))
		for i := range n {
			samples[i][0] = data[i]
			samples[i][1] = data[i]
		}
		data = data[n:]
		return n, true
	})
}

// renderCues pre-renders every cue into a buffer ready for playback.
func renderCues(sr beep.SampleRate, volume float64) map[snake.Cue]*beep.Buffer {
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	out := make(map[snake.Cue]*beep.Buffer, len(cueNotes))
	for cue, notes := range cueNotes {
		b := beep.NewBuffer(format)
		b.Append(monoStreamer(synth(sr, notes, volume)))
		out[cue] = b
	}
	return out
}
