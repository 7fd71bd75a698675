package instrument

import (
	"math"

	"github.com/cbegin/songforge-go/internal/envelope"
)

// DefaultOscillatorEnvelope is the envelope used by the pure oscillator
// variants: a short declick attack and full sustain.
func DefaultOscillatorEnvelope() envelope.Params {
	return envelope.Params{AttackSec: 0.01, DecaySec: 0, SustainLvl: 1}
}

// Sine sums one pure sine oscillator per input frequency.
type Sine struct {
	env envelope.Params
}

func NewSine(env envelope.Params) *Sine {
	return &Sine{env: env}
}

func (s *Sine) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(sineGen, s.env, freqs, durationSec, sampleRate, amplitude)
}

// Square sums one square oscillator per input frequency.
type Square struct {
	env envelope.Params
}

func NewSquare(env envelope.Params) *Square {
	return &Square{env: env}
}

func (s *Square) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(squareGen, s.env, freqs, durationSec, sampleRate, amplitude)
}

// Sawtooth sums one upward-ramping sawtooth oscillator per input frequency.
type Sawtooth struct {
	env envelope.Params
}

func NewSawtooth(env envelope.Params) *Sawtooth {
	return &Sawtooth{env: env}
}

func (s *Sawtooth) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(sawtoothGen, s.env, freqs, durationSec, sampleRate, amplitude)
}

// Voices are summed without per-voice scaling; loudness is fixed up by the
// peak normalization step in the shared pipeline.

func sineGen(t []float64, freqs []float64, _ int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		w := twoPi * f
		for i, ti := range t {
			out[i] += math.Sin(w * ti)
		}
	}
	return out
}

func squareGen(t []float64, freqs []float64, _ int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		w := twoPi * f
		for i, ti := range t {
			if math.Sin(w*ti) >= 0 {
				out[i] += 1
			} else {
				out[i] -= 1
			}
		}
	}
	return out
}

func sawtoothGen(t []float64, freqs []float64, _ int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		for i, ti := range t {
			out[i] += saw(f * ti)
		}
	}
	return out
}

// saw maps a phase in cycles to a ramp from -1 to 1 per cycle.
func saw(x float64) float64 {
	return 2*(x-math.Floor(x)) - 1
}
