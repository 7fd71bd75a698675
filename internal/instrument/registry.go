package instrument

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownInstrument reports a name with no registered factory. There is
// no synthesis capability to substitute, so this aborts the affected
// track's render.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Factory builds a fresh Instrument with its default parameters.
type Factory func() Instrument

// builtins is the explicit name-to-factory table. New instruments are added
// here (or via Register), not discovered at runtime.
var builtins = map[string]Factory{
	"sine":     func() Instrument { return NewSine(DefaultOscillatorEnvelope()) },
	"square":   func() Instrument { return NewSquare(DefaultOscillatorEnvelope()) },
	"sawtooth": func() Instrument { return NewSawtooth(DefaultOscillatorEnvelope()) },
	"piano":    func() Instrument { return NewPiano(DefaultPianoEnvelope()) },
	"bass":     func() Instrument { return NewBass(DefaultBassEnvelope()) },
	"drums":    func() Instrument { return NewDrums() },
}

// New creates the named instrument. Names are case-insensitive.
func New(name string) (Instrument, error) {
	f, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownInstrument, name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// Register adds a factory under name, replacing any existing entry.
// Call during init; the table is not synchronized against concurrent New.
func Register(name string, f Factory) {
	builtins[strings.ToLower(strings.TrimSpace(name))] = f
}

// Names returns the registered instrument names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
