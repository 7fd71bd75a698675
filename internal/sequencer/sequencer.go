// Package sequencer maps beat-relative score events onto sample-accurate
// waveform chunks and concatenates them into one track waveform.
package sequencer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cbegin/songforge-go/internal/instrument"
	"github.com/cbegin/songforge-go/internal/music"
)

// Event is one scheduled unit of sound: a set of simultaneous note names
// (empty for a rest) and a duration in quarter-note-equivalent beats.
// Beats is always relative to a quarter note regardless of the active time
// signature; 1.0 is a quarter note, 0.5 an eighth.
type Event struct {
	Notes []string
	Beats float64
}

// ErrInvalidTimeSignature reports a malformed time signature string.
// Callers substitute 4/4 and continue.
var ErrInvalidTimeSignature = errors.New("invalid time signature")

// TimeSignature carries beats per measure and the beat unit (4 = quarter
// note, 8 = eighth note). It only determines the scheduling unit; there is
// no bar grouping or accenting.
type TimeSignature struct {
	BeatsPerMeasure int
	BeatUnit        int
}

func DefaultTimeSignature() TimeSignature {
	return TimeSignature{BeatsPerMeasure: 4, BeatUnit: 4}
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.BeatsPerMeasure, ts.BeatUnit)
}

// ParseTimeSignature parses strings like "4/4" or "6/8".
func ParseTimeSignature(s string) (TimeSignature, error) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return TimeSignature{}, fmt.Errorf("%w: %q", ErrInvalidTimeSignature, s)
	}
	beats, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || beats <= 0 {
		return TimeSignature{}, fmt.Errorf("%w: %q", ErrInvalidTimeSignature, s)
	}
	unit, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil || unit <= 0 {
		return TimeSignature{}, fmt.Errorf("%w: %q", ErrInvalidTimeSignature, s)
	}
	return TimeSignature{BeatsPerMeasure: beats, BeatUnit: unit}, nil
}

type Options struct {
	// ReferencePitch tunes A4 for note resolution. 0 means 440 Hz.
	ReferencePitch float64
	// OnWarning receives recoverable per-event problems (skipped notes,
	// substituted defaults). May be nil.
	OnWarning func(msg string)
}

type Sequencer struct {
	inst       instrument.Instrument
	sampleRate int
	quarterSec float64
	calc       *music.Calculator
	onWarning  func(string)
}

func New(inst instrument.Instrument, tempoBPM float64, sig TimeSignature, sampleRate int) *Sequencer {
	return NewWithOptions(inst, tempoBPM, sig, sampleRate, Options{})
}

func NewWithOptions(inst instrument.Instrument, tempoBPM float64, sig TimeSignature, sampleRate int, opts Options) *Sequencer {
	s := &Sequencer{
		inst:       inst,
		sampleRate: sampleRate,
		calc:       music.NewCalculator(opts.ReferencePitch),
		onWarning:  opts.OnWarning,
	}
	if tempoBPM <= 0 {
		s.warnf("tempo %v is not positive, using 120 BPM", tempoBPM)
		tempoBPM = 120
	}
	if sig.BeatsPerMeasure <= 0 || sig.BeatUnit <= 0 {
		s.warnf("time signature %s is invalid, using 4/4", sig)
		sig = DefaultTimeSignature()
	}
	// One beat as defined by the signature's denominator, scaled to the
	// quarter-note unit all event durations are expressed against. In 6/8
	// at 120 BPM the base beat is an eighth note, and a quarter note is
	// twice that.
	baseBeatSec := 60.0 / tempoBPM
	s.quarterSec = baseBeatSec * (float64(sig.BeatUnit) / 4.0)
	return s
}

// QuarterNoteDuration returns the signature-invariant duration unit in
// seconds.
func (s *Sequencer) QuarterNoteDuration() float64 {
	return s.quarterSec
}

// Render resolves each event into a waveform chunk and concatenates them in
// score order. Unresolvable note names degrade to silence for that note
// with a warning; they never abort the track. Total length is the sum of
// per-event sample counts, so rounding error can accumulate across very
// long scores.
func (s *Sequencer) Render(events []Event, amplitude float64) []float32 {
	var out []float32
	for i, ev := range events {
		out = append(out, s.renderEvent(i, ev, amplitude)...)
	}
	return out
}

func (s *Sequencer) renderEvent(index int, ev Event, amplitude float64) []float32 {
	beats := ev.Beats
	if beats < 0 {
		s.warnf("event %d: negative duration %v, treating as zero", index, beats)
		beats = 0
	}
	durationSec := s.quarterSec * beats

	freqs, skipped := s.calc.Frequencies(ev.Notes)
	for _, name := range skipped {
		s.warnf("event %d: skipping unresolvable note %q", index, name)
	}

	chunk := s.inst.Waveform(freqs, durationSec, s.sampleRate, amplitude)
	s.applyRelease(chunk, durationSec)
	return chunk
}

// applyRelease fades the tail of a chunk linearly to zero over
// min(5% of the duration, 10 ms), preventing clicks at note boundaries.
// This is the release stage the instrument envelope deliberately omits.
func (s *Sequencer) applyRelease(chunk []float32, durationSec float64) {
	fadeSec := durationSec * 0.05
	if fadeSec > 0.01 {
		fadeSec = 0.01
	}
	fade := int(float64(s.sampleRate) * fadeSec)
	if fade <= 0 || len(chunk) <= fade {
		return
	}
	start := len(chunk) - fade
	if fade == 1 {
		chunk[start] = 0
		return
	}
	for i := 0; i < fade; i++ {
		g := 1 - float64(i)/float64(fade-1)
		chunk[start+i] *= float32(g)
	}
}

func (s *Sequencer) warnf(format string, args ...any) {
	if s.onWarning != nil {
		s.onWarning(fmt.Sprintf(format, args...))
	}
}
