// Package songfile loads song descriptions from the .song text format or
// from YAML, resolving note and chord aliases into concrete note names.
package songfile

// Defaults applied to omitted song and track settings.
const (
	DefaultTempo           = 120.0
	DefaultSampleRate      = 44100
	DefaultMasterAmplitude = 0.7
	DefaultOutput          = "output.wav"
	DefaultInstrument      = "sine"
	DefaultVolume          = 0.5
	DefaultTimeSignature   = "4/4"
)

// Song is the full description of one render job.
type Song struct {
	Tempo           float64 `yaml:"tempo,omitempty"`
	SampleRate      int     `yaml:"sample_rate,omitempty"`
	MasterAmplitude float64 `yaml:"master_amplitude,omitempty"`
	Output          string  `yaml:"output,omitempty"`
	Tracks          []Track `yaml:"tracks"`
}

// Track holds one track's instrument, mix and score settings. A zero
// Volume is replaced by DefaultVolume when defaults are applied, so tracks
// cannot be muted by setting volume to exactly 0; use a small value
// instead.
type Track struct {
	Name          string  `yaml:"name,omitempty"`
	Instrument    string  `yaml:"instrument,omitempty"`
	Volume        float64 `yaml:"volume,omitempty"`
	TimeSignature string  `yaml:"time_signature,omitempty"`
	Events        []Event `yaml:"events"`
}

// Event is one score line: simultaneous note names (empty for a rest) and
// a duration in quarter-note beats.
type Event struct {
	Notes []string `yaml:"notes,flow,omitempty"`
	Beats float64  `yaml:"beats"`
}

func (s *Song) applyDefaults() {
	if s.Tempo <= 0 {
		s.Tempo = DefaultTempo
	}
	if s.SampleRate <= 0 {
		s.SampleRate = DefaultSampleRate
	}
	if s.MasterAmplitude <= 0 {
		s.MasterAmplitude = DefaultMasterAmplitude
	}
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	for i := range s.Tracks {
		tr := &s.Tracks[i]
		if tr.Instrument == "" {
			tr.Instrument = DefaultInstrument
		}
		if tr.Volume <= 0 {
			tr.Volume = DefaultVolume
		}
		if tr.TimeSignature == "" {
			tr.TimeSignature = DefaultTimeSignature
		}
	}
}
