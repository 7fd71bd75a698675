// Package envelope provides linear attack-decay-sustain amplitude shaping.
// Release is deliberately not part of this stage: the sequencer applies a
// short fade-out at note boundaries so release length can track inter-note
// spacing instead of being a fixed instrument property.
package envelope

import "math"

// Params holds the ADS envelope of one instrument. Immutable after
// construction.
type Params struct {
	AttackSec  float64
	DecaySec   float64
	SustainLvl float64
}

// Flat returns a pass-through envelope (no attack, no decay, full sustain).
func Flat() Params {
	return Params{SustainLvl: 1}
}

// IsFlat reports whether applying p leaves a buffer unchanged.
func (p Params) IsFlat() bool {
	return p.AttackSec <= 0 && p.DecaySec <= 0 && p.SustainLvl == 1
}

// Apply shapes buf in place. Attack ramps linearly 0 to 1, decay ramps 1 to
// SustainLvl, and the remainder holds SustainLvl. Attack and decay sample
// counts are clamped so they never exceed the buffer. Zero-length buffers
// are returned unchanged.
func (p Params) Apply(buf []float32, sampleRate int) {
	n := len(buf)
	if n == 0 || p.IsFlat() {
		return
	}
	attack := clampSamples(p.AttackSec, sampleRate, n)
	decay := clampSamples(p.DecaySec, sampleRate, n-attack)

	for i, g := range ramp(0, 1, attack) {
		buf[i] *= float32(g)
	}
	for i, g := range ramp(1, p.SustainLvl, decay) {
		buf[attack+i] *= float32(g)
	}
	sustain := float32(p.SustainLvl)
	for i := attack + decay; i < n; i++ {
		buf[i] *= sustain
	}
}

// Make returns a standalone envelope curve of numSamples gain values.
// Used by the drum generators, which shape each percussive voice with its
// own local envelope before the shared pipeline runs.
func Make(attackSec, decaySec, sustainLvl float64, numSamples, sampleRate int) []float64 {
	env := make([]float64, numSamples)
	attack := clampSamples(attackSec, sampleRate, numSamples)
	decay := clampSamples(decaySec, sampleRate, numSamples-attack)

	copy(env, ramp(0, 1, attack))
	copy(env[attack:], ramp(1, sustainLvl, decay))
	for i := attack + decay; i < numSamples; i++ {
		env[i] = sustainLvl
	}
	return env
}

func clampSamples(seconds float64, sampleRate, limit int) int {
	n := int(math.Round(float64(sampleRate) * seconds))
	if n < 0 {
		n = 0
	}
	if n > limit {
		n = limit
	}
	return n
}

// ramp returns n values running linearly from start to end, with the last
// value exactly end when n > 1.
func ramp(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = end
	return out
}
