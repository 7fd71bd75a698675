package instrument

import (
	"math"
	"math/rand"

	"github.com/cbegin/songforge-go/internal/envelope"
	"github.com/cbegin/songforge-go/internal/music"
)

// Drum trigger tolerances: incoming frequencies are matched against the
// canonical trigger frequencies with a small relative tolerance, so the
// exact float produced by any enharmonic spelling of the trigger note
// still matches.
const (
	triggerRelTol = 1e-5
	triggerAbsTol = 1e-8
)

// Drums is a percussive instrument keyed by frequency identity rather than
// pitch: four canonical trigger frequencies select four generators, and
// unmatched frequencies produce nothing. Each generator shapes its own
// transient with a local envelope, so the outer pipeline envelope is flat.
type Drums struct {
	env      envelope.Params
	triggers []drumTrigger
}

type drumTrigger struct {
	name string
	freq float64
	gen  func(t []float64, sampleRate int) []float64
}

// NewDrums builds the drum kit with its fixed trigger map. Triggers always
// derive from the standard 440 Hz tuning regardless of any sequencer-level
// reference pitch, matching the frequencies the default alias table emits.
func NewDrums() *Drums {
	calc := music.NewCalculator(music.DefaultReferencePitch)
	trigger := func(name, note string, gen func([]float64, int) []float64) drumTrigger {
		f, err := calc.Frequency(note)
		if err != nil {
			panic(err) // fixed note names, cannot fail
		}
		return drumTrigger{name: name, freq: f, gen: gen}
	}
	return &Drums{
		env: envelope.Flat(),
		triggers: []drumTrigger{
			trigger("kick", "C4", kickGen),
			trigger("snare", "D4", snareGen),
			trigger("tom", "F4", tomGen),
			trigger("hat", "G4", hatGen),
		},
	}
}

func (d *Drums) Waveform(freqs []float64, durationSec float64, sampleRate int, amplitude float64) []float32 {
	return render(d.generate, d.env, freqs, durationSec, sampleRate, amplitude)
}

// generate sums one generator per matched trigger frequency. A "drum
// chord" (several simultaneous triggers) sums its voices before the shared
// normalize step runs.
func (d *Drums) generate(t []float64, freqs []float64, sampleRate int) []float64 {
	out := make([]float64, len(t))
	for _, f := range freqs {
		for _, tr := range d.triggers {
			if !closeTo(f, tr.freq) {
				continue
			}
			for i, v := range tr.gen(t, sampleRate) {
				out[i] += v
			}
			break
		}
	}
	return out
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= triggerAbsTol+triggerRelTol*math.Abs(b)
}

// kickGen is a sine whose instantaneous frequency sweeps linearly from 120
// to 40 Hz. The phase is the cumulative integral of the frequency sweep,
// keeping the sweep continuous and click-free.
func kickGen(t []float64, sampleRate int) []float64 {
	return pitchDrop(t, sampleRate, 120, 40, 0.15)
}

// tomGen is the kick an octave-ish up: 200 to 100 Hz with a longer tail.
func tomGen(t []float64, sampleRate int) []float64 {
	return pitchDrop(t, sampleRate, 200, 100, 0.2)
}

func pitchDrop(t []float64, sampleRate int, fromHz, toHz, decaySec float64) []float64 {
	n := len(t)
	env := envelope.Make(0.001, decaySec, 0, n, sampleRate)
	out := make([]float64, n)
	phase := 0.0
	for i, f := range sweep(fromHz, toHz, n) {
		phase += twoPi * f / float64(sampleRate)
		out[i] = math.Sin(phase) * env[i]
	}
	return out
}

// snareGen is uniform white noise plus a quiet 200 Hz sine pop.
func snareGen(t []float64, sampleRate int) []float64 {
	n := len(t)
	env := envelope.Make(0.001, 0.1, 0, n, sampleRate)
	out := make([]float64, n)
	for i, ti := range t {
		noise := rand.Float64() - 0.5
		body := 0.5 * math.Sin(twoPi*200*ti)
		out[i] = (noise + body) * env[i]
	}
	return out
}

// hatGen is white noise cubed; cubing emphasizes the peaks, which reads as
// brighter and shorter.
func hatGen(t []float64, sampleRate int) []float64 {
	n := len(t)
	env := envelope.Make(0.001, 0.05, 0, n, sampleRate)
	out := make([]float64, n)
	for i := range out {
		x := rand.Float64()*2 - 1
		out[i] = x * x * x * env[i]
	}
	return out
}

// sweep returns n frequencies running linearly from fromHz to toHz,
// endpoint included.
func sweep(fromHz, toHz float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = fromHz
		return out
	}
	step := (toHz - fromHz) / float64(n-1)
	for i := range out {
		out[i] = fromHz + step*float64(i)
	}
	return out
}
