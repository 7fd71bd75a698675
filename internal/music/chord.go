package music

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidChordQuality reports a chord quality with no interval recipe.
var ErrInvalidChordQuality = errors.New("invalid chord quality")

// chordIntervals defines chord recipes as semitone offsets from the root.
var chordIntervals = map[string][]int{
	"major":      {0, 4, 7},
	"minor":      {0, 3, 7},
	"diminished": {0, 3, 6},
	"augmented":  {0, 4, 8},

	"major7":    {0, 4, 7, 11},
	"minor7":    {0, 3, 7, 10},
	"dominant7": {0, 4, 7, 10},
}

// ChordQualities returns the supported chord quality names, sorted.
func ChordQualities() []string {
	names := make([]string, 0, len(chordIntervals))
	for name := range chordIntervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChordFrequencies returns the frequencies of the chord built on rootNote
// with the given quality (e.g. "C4", "minor7"). The root note and quality
// are both validated.
func (c *Calculator) ChordFrequencies(rootNote, quality string) ([]float64, error) {
	rootFreq, err := c.Frequency(rootNote)
	if err != nil {
		return nil, err
	}
	intervals, ok := chordIntervals[quality]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChordQuality, quality)
	}
	freqs := make([]float64, len(intervals))
	for i, n := range intervals {
		freqs[i] = rootFreq * math.Pow(2, float64(n)/12)
	}
	return freqs, nil
}
