package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// BlipGenerator is a sine tone with an exponential decay, finite length
type BlipGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // envelope rate, 1/seconds
	gain  float64
	pos   int
	total int
}

// NewBlipGenerator creates a blip of the given pitch and duration
func NewBlipGenerator(sr beep.SampleRate, freq float64, d time.Duration, gain float64) *BlipGenerator {
	return &BlipGenerator{
		sr:    sr,
		freq:  freq,
		decay: 5 / d.Seconds(),
		gain:  gain,
		total: sr.N(d),
	}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		sample := g.gain * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BlipGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Odd harmonics for a harsh edge
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*3*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*5*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// escapePitch maps the number of escapes in one tick to a blip frequency
// Busier ticks sound higher, up to one octave above the base at 4+ escapes
func escapePitch(escaped int) float64 {
	const base = 660.0
	if escaped < 1 {
		escaped = 1
	}
	octaves := math.Min(math.Log2(float64(escaped)), 2)
	return base * math.Pow(2, octaves/2)
}

// escapeCue is one short blip
func escapeCue(sr beep.SampleRate, escaped int) beep.Streamer {
	return NewBlipGenerator(sr, escapePitch(escaped), 60*time.Millisecond, 0.25)
}

// refillCue is a falling two-note chime played when the ring had to be reseeded
func refillCue(sr beep.SampleRate) beep.Streamer {
	return beep.Seq(
		NewBlipGenerator(sr, 880, 120*time.Millisecond, 0.3),
		NewBlipGenerator(sr, 587.33, 200*time.Millisecond, 0.3),
	)
}

// capCue is a short buzz played when the population saturates
func capCue(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(150*time.Millisecond), NewBuzzGenerator(sr, 110))
}
