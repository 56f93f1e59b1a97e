package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// PopGenerator synthesizes a firework burst: a noise crack over a falling
// low thump, decaying quickly.
type PopGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewPopGenerator creates a pop generator. Different seeds give slightly
// different cracks.
func NewPopGenerator(sr beep.SampleRate, seed int64) *PopGenerator {
	return &PopGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sharp attack, fast decay
		envelope := math.Exp(-t * 25)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// Thump sweeping down from 150Hz
		freq := 60 + 90*math.Exp(-t*20)
		thump := math.Sin(2 * math.Pi * freq * t)

		sample := envelope * (0.6*noise + 0.4*thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
