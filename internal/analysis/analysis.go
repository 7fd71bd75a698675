// Package analysis provides small spectral and time-domain measurements of
// rendered buffers, for tests and for the CLI's render summary.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// DominantFrequency estimates the strongest frequency component of a mono
// buffer in Hz. It transforms the largest power-of-two prefix of samples
// under a Hann window and picks the peak magnitude bin. Returns 0 when the
// buffer is too short or silent.
func DominantFrequency(samples []float32, sampleRate int) float64 {
	n := largestPowerOfTwo(len(samples))
	if n < 16 || sampleRate <= 0 {
		return 0
	}
	f, err := fft.New(n)
	if err != nil {
		return 0
	}
	buf := make([]complex128, n)
	for i := 0; i < n; i++ {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex(float64(samples[i])*w, 0)
	}
	buf = f.Transform(buf)

	bestBin, bestMag := 0, 0.0
	for i := 1; i < n/2; i++ {
		if m := cmplx.Abs(buf[i]); m > bestMag {
			bestBin, bestMag = i, m
		}
	}
	if bestMag == 0 {
		return 0
	}
	return float64(bestBin) * float64(sampleRate) / float64(n)
}

// ZeroCrossings counts sign changes in the buffer. Useful as a cheap
// pitch-trend probe: a downward frequency sweep crosses zero less often in
// its tail than in its onset.
func ZeroCrossings(samples []float32) int {
	count := 0
	prev := float32(0)
	for _, s := range samples {
		if (prev > 0 && s < 0) || (prev < 0 && s > 0) {
			count++
		}
		if s != 0 {
			prev = s
		}
	}
	return count
}

// Peak returns the maximum absolute sample value.
func Peak(samples []float32) float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
