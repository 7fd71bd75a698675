// Package instrument turns lists of frequencies into enveloped waveforms.
// Every variant runs the same pipeline: generate a raw waveform, normalize
// it to the requested amplitude by its peak, then apply the instrument's
// ADS envelope.
package instrument

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/cbegin/songforge-go/internal/envelope"
)

const twoPi = math.Pi * 2

// Instrument produces a mono waveform of round(sampleRate*durationSec)
// samples for a set of simultaneous frequencies. An empty frequency list
// yields silence of the correct length. Implementations are stateless
// across calls.
type Instrument interface {
	Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32
}

// generator is the variant-specific raw synthesis step. t holds
// len(t) evenly spaced points over [0, durationSec).
type generator func(t []float64, freqs []float64, sampleRate int) []float64

// render runs the shared pipeline around a variant's generator.
func render(gen generator, env envelope.Params, freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	n := numSamples(sampleRate, durationSec)
	buf := make([]float32, n)
	if n == 0 || len(freqs) == 0 {
		// A rest never invokes oscillator code.
		return buf
	}
	raw := gen(timeAxis(durationSec, n), freqs, sampleRate)
	for i, v := range raw {
		buf[i] = float32(v)
	}
	normalize(buf, amplitude)
	env.Apply(buf, sampleRate)
	return buf
}

func numSamples(sampleRate int, durationSec float64) int {
	if durationSec <= 0 {
		return 0
	}
	return int(math.Round(float64(sampleRate) * durationSec))
}

func timeAxis(durationSec float64, n int) []float64 {
	t := make([]float64, n)
	step := durationSec / float64(n)
	for i := range t {
		t[i] = step * float64(i)
	}
	return t
}

// normalize scales buf so its peak equals amplitude. A zero-peak buffer is
// left untouched; this is the divide-by-zero (and NaN) guard for silent or
// degenerate synthesis output.
func normalize(buf []float32, amplitude float64) {
	peak := vek32.Max(buf)
	if low := -vek32.Min(buf); low > peak {
		peak = low
	}
	if peak > 0 {
		vek32.MulNumber_Inplace(buf, float32(amplitude)/peak)
	}
}
