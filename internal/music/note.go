// Package music converts symbolic note names into frequencies under
// 12-tone equal temperament.
package music

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidNote reports a note name that does not match the
// [A-G][#b]?[digit] grammar or names an unknown pitch class.
// Callers are expected to skip the note and continue.
var ErrInvalidNote = errors.New("invalid note name")

const (
	// DefaultReferencePitch is the frequency of A4 in the standard tuning.
	DefaultReferencePitch = 440.0

	// semitonesA4 is the absolute semitone index of A4 (pitch class 9, octave 4).
	semitonesA4 = 9 + 4*12
)

// pitchClasses maps letter+accidental spellings to pitch class integers,
// C=0 through B=11. Sharp and flat spellings of the same pitch class
// resolve identically.
var pitchClasses = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
	"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
	"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
}

var noteRegex = regexp.MustCompile(`^([A-G])([#b]?)(\d)$`)

// Calculator computes note frequencies relative to a configurable
// reference pitch for A4. The zero value is not usable; use NewCalculator.
type Calculator struct {
	referencePitch float64
}

// NewCalculator returns a Calculator tuned so that A4 sounds at
// referencePitchHz. Non-positive values fall back to 440 Hz.
func NewCalculator(referencePitchHz float64) *Calculator {
	if referencePitchHz <= 0 {
		referencePitchHz = DefaultReferencePitch
	}
	return &Calculator{referencePitch: referencePitchHz}
}

// ReferencePitch returns the A4 frequency this Calculator is tuned to.
func (c *Calculator) ReferencePitch() float64 {
	return c.referencePitch
}

// Frequency returns the equal-temperament frequency in Hz of a note name
// such as "A4" or "C#5". It returns ErrInvalidNote for unparseable input.
func (c *Calculator) Frequency(name string) (float64, error) {
	m := noteRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	pc, ok := pitchClasses[m[1]+m[2]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	n := pc + octave*12 - semitonesA4
	return c.referencePitch * math.Pow(2, float64(n)/12), nil
}

// Frequencies resolves a list of note names, dropping any that fail to
// parse. The second return value reports the names that were skipped.
func (c *Calculator) Frequencies(names []string) ([]float64, []string) {
	freqs := make([]float64, 0, len(names))
	var skipped []string
	for _, name := range names {
		f, err := c.Frequency(name)
		if err != nil {
			skipped = append(skipped, name)
			continue
		}
		freqs = append(freqs, f)
	}
	return freqs, skipped
}
