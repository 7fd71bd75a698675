// Package songforge renders symbolic musical scores into fully mixed audio
// sample buffers. Each track is sequenced through its instrument into a
// mono float32 waveform; the tracks are then summed with per-track gain,
// overflow-safe normalization and a final hard clip.
package songforge

import (
	"fmt"
	"sync"

	"github.com/cbegin/songforge-go/internal/instrument"
	"github.com/cbegin/songforge-go/internal/mixer"
	"github.com/cbegin/songforge-go/internal/sequencer"
	"github.com/cbegin/songforge-go/internal/songfile"
)

type Option func(*config)

type config struct {
	referencePitch float64
	strictTracks   bool
	onWarning      func(string)
}

func defaultConfig() config {
	return config{}
}

// WithReferencePitch tunes A4 for all note resolution. 0 means 440 Hz.
func WithReferencePitch(hz float64) Option {
	return func(cfg *config) {
		cfg.referencePitch = hz
	}
}

// WithStrictTracks makes an unknown instrument abort the whole render
// instead of skipping the affected track with a warning.
func WithStrictTracks(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictTracks = enabled
	}
}

// WithOnWarning installs a callback for recoverable problems (skipped
// notes, substituted defaults, omitted tracks). The callback may be
// invoked from multiple goroutines during a render; calls are serialized.
func WithOnWarning(fn func(msg string)) Option {
	return func(cfg *config) {
		cfg.onWarning = fn
	}
}

// LoadSong reads a song file (text .song format or YAML, by extension),
// routing parser warnings to the WithOnWarning callback.
func LoadSong(path string, opts ...Option) (*songfile.Song, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return songfile.Load(path, songfile.ParseOptions{OnWarning: cfg.onWarning})
}

// RenderSong renders and mixes every track of a song into one master
// waveform in [-1, 1]. Tracks are independent and render concurrently.
// Unknown instruments omit the affected track with a warning unless
// WithStrictTracks is set.
func RenderSong(song *songfile.Song, opts ...Option) ([]float32, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	warn := serializedWarn(cfg.onWarning)

	sampleRate := song.SampleRate
	if sampleRate <= 0 {
		sampleRate = songfile.DefaultSampleRate
	}
	masterAmplitude := song.MasterAmplitude
	if masterAmplitude <= 0 {
		masterAmplitude = songfile.DefaultMasterAmplitude
	}

	var pending []songfile.Track
	for _, tr := range song.Tracks {
		if _, err := instrument.New(tr.Instrument); err != nil {
			if cfg.strictTracks {
				return nil, fmt.Errorf("track %q: %w", tr.Name, err)
			}
			warn(fmt.Sprintf("track %q: %v (omitting track)", tr.Name, err))
			continue
		}
		pending = append(pending, tr)
	}

	rendered := make([]mixer.Track, len(pending))
	var wg sync.WaitGroup
	for i, tr := range pending {
		wg.Add(1)
		go func(i int, tr songfile.Track) {
			defer wg.Done()
			samples, err := renderTrack(tr, song.Tempo, sampleRate, cfg, warn)
			if err != nil {
				// Instrument existence was checked above; this is
				// unreachable in practice but kept non-fatal.
				warn(fmt.Sprintf("track %q: %v", tr.Name, err))
				return
			}
			rendered[i] = mixer.Track{Samples: samples, Volume: tr.Volume}
		}(i, tr)
	}
	wg.Wait()

	return mixer.Mix(rendered, masterAmplitude), nil
}

// RenderTrack renders a single track at full amplitude, without mixing.
func RenderTrack(tr songfile.Track, tempoBPM float64, sampleRate int, opts ...Option) ([]float32, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return renderTrack(tr, tempoBPM, sampleRate, cfg, serializedWarn(cfg.onWarning))
}

func renderTrack(tr songfile.Track, tempoBPM float64, sampleRate int, cfg config, warn func(string)) ([]float32, error) {
	inst, err := instrument.New(tr.Instrument)
	if err != nil {
		return nil, err
	}
	sig, err := sequencer.ParseTimeSignature(tr.TimeSignature)
	if err != nil {
		warn(fmt.Sprintf("track %q: %v, using 4/4", tr.Name, err))
		sig = sequencer.DefaultTimeSignature()
	}
	seq := sequencer.NewWithOptions(inst, tempoBPM, sig, sampleRate, sequencer.Options{
		ReferencePitch: cfg.referencePitch,
		OnWarning: func(msg string) {
			warn(fmt.Sprintf("track %q: %s", tr.Name, msg))
		},
	})

	events := make([]sequencer.Event, len(tr.Events))
	for i, ev := range tr.Events {
		events[i] = sequencer.Event{Notes: ev.Notes, Beats: ev.Beats}
	}
	// Tracks render at full amplitude; the mixer applies per-track volume.
	return seq.Render(events, 1.0), nil
}

// serializedWarn wraps a warning callback so concurrent track renders can
// share it. A nil callback yields a no-op.
func serializedWarn(fn func(string)) func(string) {
	if fn == nil {
		return func(string) {}
	}
	var mu sync.Mutex
	return func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		fn(msg)
	}
}
