package instrument

import (
	"math"

	"github.com/cbegin/songforge-go/internal/envelope"
)

// pianoHarmonics is the additive-synthesis table: harmonic multiple and
// amplitude relative to the fundamental.
var pianoHarmonics = [...]struct {
	mult float64
	amp  float64
}{
	{1, 1.0},
	{2, 0.4},
	{3, 0.2},
	{4, 0.1},
	{5, 0.05},
}

// DefaultPianoEnvelope gives the percussive, non-sustaining piano
// character: near-instant attack, 300 ms decay to zero sustain.
func DefaultPianoEnvelope() envelope.Params {
	return envelope.Params{AttackSec: 0.002, DecaySec: 0.3, SustainLvl: 0}
}

// Piano approximates a piano by summing the first five harmonics of each
// input frequency.
type Piano struct {
	env envelope.Params
}

func NewPiano(env envelope.Params) *Piano {
	return &Piano{env: env}
}

func (p *Piano) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(pianoGen, p.env, freqs, durationSec, sampleRate, amplitude)
}

func pianoGen(t []float64, freqs []float64, _ int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		for _, h := range pianoHarmonics {
			w := twoPi * f * h.mult
			for i, ti := range t {
				out[i] += h.amp * math.Sin(w*ti)
			}
		}
	}
	return out
}
