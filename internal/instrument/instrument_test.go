package instrument

import (
	"errors"
	"math"
	"testing"

	"github.com/cbegin/songforge-go/internal/analysis"
	"github.com/cbegin/songforge-go/internal/envelope"
	"github.com/cbegin/songforge-go/internal/music"
)

const sr = 44100

func allVariants() map[string]Instrument {
	return map[string]Instrument{
		"sine":     NewSine(DefaultOscillatorEnvelope()),
		"square":   NewSquare(DefaultOscillatorEnvelope()),
		"sawtooth": NewSawtooth(DefaultOscillatorEnvelope()),
		"piano":    NewPiano(DefaultPianoEnvelope()),
		"bass":     NewBass(DefaultBassEnvelope()),
		"drums":    NewDrums(),
	}
}

func TestEmptyFrequenciesYieldSilenceOfCorrectLength(t *testing.T) {
	const dur = 0.37
	want := int(math.Round(sr * dur))
	for name, inst := range allVariants() {
		buf := inst.Waveform(nil, dur, sr, 0.5)
		if len(buf) != want {
			t.Errorf("%s: length %d, want %d", name, len(buf), want)
		}
		for i, s := range buf {
			if s != 0 {
				t.Errorf("%s: sample %d not silent: %f", name, i, s)
				break
			}
		}
	}
}

func TestZeroDurationYieldsEmptyBuffer(t *testing.T) {
	for name, inst := range allVariants() {
		if buf := inst.Waveform([]float64{440}, 0, sr, 0.5); len(buf) != 0 {
			t.Errorf("%s: expected empty buffer, got %d samples", name, len(buf))
		}
	}
}

func TestNormalizedPeakEqualsAmplitude(t *testing.T) {
	// Flat envelopes so the pipeline's envelope stage cannot reshape the
	// normalized peak.
	flat := envelope.Flat()
	variants := map[string]Instrument{
		"sine":     NewSine(flat),
		"square":   NewSquare(flat),
		"sawtooth": NewSawtooth(flat),
		"piano":    NewPiano(flat),
		"bass":     NewBass(flat),
	}
	for name, inst := range variants {
		for _, amp := range []float64{0.25, 0.5, 1.0} {
			buf := inst.Waveform([]float64{220, 440}, 0.25, sr, amp)
			peak := analysis.Peak(buf)
			if math.Abs(peak-amp) > 1e-4 {
				t.Errorf("%s amp=%f: peak %f", name, amp, peak)
			}
		}
	}
}

func TestSinePitch(t *testing.T) {
	s := NewSine(envelope.Flat())
	buf := s.Waveform([]float64{440}, 0.5, sr, 1)
	got := analysis.DominantFrequency(buf, sr)
	if math.Abs(got-440) > 5 {
		t.Fatalf("dominant frequency %f, want ~440", got)
	}
}

func TestSquareAlternatesBetweenLevels(t *testing.T) {
	s := NewSquare(envelope.Flat())
	buf := s.Waveform([]float64{100}, 0.1, sr, 1)
	var hi, lo bool
	for _, v := range buf {
		if v > 0.99 {
			hi = true
		}
		if v < -0.99 {
			lo = true
		}
	}
	if !hi || !lo {
		t.Fatalf("square should hit both rails, hi=%v lo=%v", hi, lo)
	}
}

func TestPianoContainsHarmonics(t *testing.T) {
	p := NewPiano(envelope.Flat())
	buf := p.Waveform([]float64{220}, 0.5, sr, 1)
	// Fundamental dominates (relative amplitude 1.0 vs 0.4 for the 2nd).
	got := analysis.DominantFrequency(buf, sr)
	if math.Abs(got-220) > 5 {
		t.Fatalf("dominant frequency %f, want ~220", got)
	}
}

func TestDrumTriggerMatching(t *testing.T) {
	d := NewDrums()
	kick := mustFreq(t, "C4")

	buf := d.Waveform([]float64{kick}, 0.25, sr, 0.8)
	if analysis.Peak(buf) == 0 {
		t.Fatal("kick trigger produced silence")
	}

	// An unmatched frequency synthesizes nothing.
	buf = d.Waveform([]float64{123.456}, 0.25, sr, 0.8)
	if analysis.Peak(buf) != 0 {
		t.Fatal("unmatched frequency should produce silence")
	}
}

func TestDrumChordSumsVoices(t *testing.T) {
	d := NewDrums()
	kick := mustFreq(t, "C4")
	hat := mustFreq(t, "G4")
	buf := d.Waveform([]float64{kick, hat}, 0.25, sr, 0.8)
	if analysis.Peak(buf) == 0 {
		t.Fatal("drum chord produced silence")
	}
}

func TestKickSweepsDownward(t *testing.T) {
	d := NewDrums()
	kick := mustFreq(t, "C4")
	buf := d.Waveform([]float64{kick}, 0.15, sr, 1)
	half := len(buf) / 2
	first := analysis.ZeroCrossings(buf[:half])
	second := analysis.ZeroCrossings(buf[half:])
	if first <= second {
		t.Fatalf("expected decreasing zero-crossing rate, first=%d second=%d", first, second)
	}
}

func TestRegistryKnowsAllBuiltins(t *testing.T) {
	for _, name := range []string{"sine", "square", "sawtooth", "piano", "bass", "drums"} {
		inst, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if inst == nil {
			t.Fatalf("New(%q) returned nil", name)
		}
	}
}

func TestRegistryIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"Piano", "DRUMS", "  sine "} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
}

func TestRegistryUnknownName(t *testing.T) {
	if _, err := New("theremin"); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("expected ErrUnknownInstrument, got %v", err)
	}
}

func mustFreq(t *testing.T, note string) float64 {
	t.Helper()
	f, err := music.NewCalculator(music.DefaultReferencePitch).Frequency(note)
	if err != nil {
		t.Fatalf("Frequency(%s) failed: %v", note, err)
	}
	return f
}
