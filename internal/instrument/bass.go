package instrument

import (
	"math"

	"github.com/cbegin/songforge-go/internal/envelope"
)

// DefaultBassEnvelope simulates a plucked string: very fast attack, quick
// decay, low sustain.
func DefaultBassEnvelope() envelope.Params {
	return envelope.Params{AttackSec: 0.005, DecaySec: 0.15, SustainLvl: 0.1}
}

// Bass blends a sine (fundamental body) with a sawtooth (pluck brightness)
// at the same frequency, 50/50.
type Bass struct {
	env envelope.Params
}

func NewBass(env envelope.Params) *Bass {
	return &Bass{env: env}
}

func (b *Bass) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(bassGen, b.env, freqs, durationSec, sampleRate, amplitude)
}

func bassGen(t []float64, freqs []float64, _ int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		w := twoPi * f
		for i, ti := range t {
			out[i] += 0.5*math.Sin(w*ti) + 0.5*saw(f*ti)
		}
	}
	return out
}
