package envelope

import (
	"math"
	"testing"
)

func ones(n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestApplyShapesAttackDecaySustain(t *testing.T) {
	const sr = 1000
	p := Params{AttackSec: 0.1, DecaySec: 0.1, SustainLvl: 0.5}
	buf := ones(1000)
	p.Apply(buf, sr)

	if buf[0] != 0 {
		t.Errorf("attack should start at 0, got %f", buf[0])
	}
	if math.Abs(float64(buf[99])-1) > 1e-6 {
		t.Errorf("attack should end at 1, got %f", buf[99])
	}
	if math.Abs(float64(buf[199])-0.5) > 1e-6 {
		t.Errorf("decay should end at sustain level, got %f", buf[199])
	}
	for i := 200; i < 1000; i++ {
		if math.Abs(float64(buf[i])-0.5) > 1e-6 {
			t.Fatalf("sustain sample %d: got %f, want 0.5", i, buf[i])
		}
	}
}

func TestApplyNeverExceedsUnity(t *testing.T) {
	for _, p := range []Params{
		{AttackSec: 0.01, DecaySec: 0.3, SustainLvl: 0},
		{AttackSec: 0, DecaySec: 0.15, SustainLvl: 0.1},
		{AttackSec: 0.5, DecaySec: 0.5, SustainLvl: 1},
	} {
		buf := ones(2000)
		p.Apply(buf, 1000)
		for i, s := range buf {
			if s < 0 || s > 1 {
				t.Fatalf("params %+v sample %d out of [0,1]: %f", p, i, s)
			}
		}
	}
}

func TestApplyClampsSegmentsToBufferLength(t *testing.T) {
	// Attack alone would be 10x the buffer; decay must be clamped to zero.
	p := Params{AttackSec: 10, DecaySec: 10, SustainLvl: 0.5}
	buf := ones(100)
	p.Apply(buf, 1000) // does not panic, attack fills everything
	if buf[0] != 0 || buf[99] != 1 {
		t.Errorf("clamped attack should ramp 0 to 1 across the buffer, got %f..%f", buf[0], buf[99])
	}
	for i := 1; i < 100; i++ {
		if buf[i] < buf[i-1] {
			t.Fatalf("decay leaked into the clamped attack at sample %d", i)
		}
	}
}

func TestApplyZeroLengthBuffer(t *testing.T) {
	p := Params{AttackSec: 0.01, DecaySec: 0.01, SustainLvl: 0.5}
	p.Apply(nil, 44100) // must not panic
}

func TestFlatEnvelopeIsIdentity(t *testing.T) {
	buf := []float32{0.25, -0.5, 1, -1}
	Flat().Apply(buf, 44100)
	expected := []float32{0.25, -0.5, 1, -1}
	for i := range buf {
		if buf[i] != expected[i] {
			t.Fatalf("sample %d changed: %f != %f", i, buf[i], expected[i])
		}
	}
}

func TestMakeMatchesApply(t *testing.T) {
	const sr, n = 1000, 500
	env := Make(0.05, 0.2, 0.3, n, sr)
	buf := ones(n)
	Params{AttackSec: 0.05, DecaySec: 0.2, SustainLvl: 0.3}.Apply(buf, sr)
	for i := range env {
		if math.Abs(env[i]-float64(buf[i])) > 1e-6 {
			t.Fatalf("sample %d: Make=%f Apply=%f", i, env[i], buf[i])
		}
	}
}

func TestMakeZeroSamples(t *testing.T) {
	if env := Make(0.01, 0.01, 0.5, 0, 44100); len(env) != 0 {
		t.Fatalf("expected empty envelope, got %d samples", len(env))
	}
}
