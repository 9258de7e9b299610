package feedback

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// fadeDuration ramps tone edges to avoid clicks
const fadeDuration = 5 * time.Millisecond

// squareTone is a band-limited-enough square wave with a linear fade in and out
type squareTone struct {
	freq  float64
	phase float64
	pos   int
	total int
	fade  int
}

func newSquareTone(freq float64, d time.Duration) *squareTone {
	return &squareTone{
		freq:  freq,
		total: sampleRate.N(d),
		fade:  sampleRate.N(fadeDuration),
	}
}

func (s *squareTone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		val := 0.5
		if s.phase >= 0.5 {
			val = -0.5
		}
		val *= envelope(s.pos, s.total, s.fade)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *squareTone) Err() error { return nil }

func envelope(pos, total, fade int) float64 {
	if fade <= 0 {
		return 1
	}
	if pos < fade {
		return float64(pos) / float64(fade)
	}
	if rem := total - pos; rem < fade {
		return float64(rem) / float64(fade)
	}
	return 1
}

// chime is two rising sine notes played on resolve
func chime() (beep.Streamer, error) {
	low, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return nil, err
	}
	high, err := generators.SineTone(sampleRate, 990)
	if err != nil {
		return nil, err
	}
	note := sampleRate.N(60 * time.Millisecond)
	return beep.Seq(beep.Take(note, low), beep.Take(note, high)), nil
}

// buzz is the low cancel tone
func buzz() beep.Streamer {
	return newSquareTone(220, 120*time.Millisecond)
}

// withVolume scales s linearly; volume is in [0, 1]
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: volume - 1}
}
