package songfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseOptions configures song loading. The zero value uses the default
// alias table and drops warnings.
type ParseOptions struct {
	// Aliases resolves note tokens. Nil means DefaultAliases().
	Aliases *Aliases
	// OnWarning receives recoverable per-line problems. May be nil.
	OnWarning func(msg string)
}

func (o *ParseOptions) aliases() *Aliases {
	if o.Aliases == nil {
		o.Aliases = DefaultAliases()
	}
	return o.Aliases
}

func (o *ParseOptions) warnf(format string, args ...any) {
	if o.OnWarning != nil {
		o.OnWarning(fmt.Sprintf(format, args...))
	}
}

// Load reads a song file, choosing the format by extension: .yaml and .yml
// are parsed as YAML, everything else as the .song text format.
func Load(path string, opts ParseOptions) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data, opts)
	default:
		return Parse(strings.NewReader(string(data)), opts)
	}
}

// Parse reads the .song text format:
//
//	# comment
//	TEMPO: 120
//	SAMPLE_RATE: 44100
//	MASTER_AMPLITUDE: 0.7
//	OUTPUT_FILE: out.wav
//
//	[TRACK: melody]
//	INSTRUMENT: piano
//	VOLUME: 0.7
//	TIME_SIGNATURE: 4/4
//	C4 1
//	E4 G4 0.5
//	REST 1
//	[REPEAT: 2]
//
// Settings before the first [TRACK] are global. A note line is a list of
// aliases optionally followed by a duration in quarter-note beats
// (default 1.0). [REPEAT: n] appends the track's events gathered so far n
// more times. Bad note lines and unknown aliases produce warnings, never
// errors.
func Parse(r io.Reader, opts ParseOptions) (*Song, error) {
	aliases := opts.aliases()
	song := &Song{}
	var track *Track

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "[TRACK:") && strings.HasSuffix(line, "]"):
			song.Tracks = append(song.Tracks, Track{
				Name: strings.TrimSpace(line[len("[TRACK:") : len(line)-1]),
			})
			track = &song.Tracks[len(song.Tracks)-1]

		case strings.HasPrefix(line, "[REPEAT:") && strings.HasSuffix(line, "]"):
			if track == nil {
				opts.warnf("line %d: [REPEAT] outside of a track, ignoring", lineNo)
				continue
			}
			count, err := strconv.Atoi(strings.TrimSpace(line[len("[REPEAT:") : len(line)-1]))
			if err != nil || count < 0 {
				opts.warnf("line %d: invalid repeat count, ignoring", lineNo)
				continue
			}
			block := make([]Event, len(track.Events))
			copy(block, track.Events)
			for i := 0; i < count; i++ {
				track.Events = append(track.Events, block...)
			}

		case strings.Contains(line, ":"):
			key, value, _ := strings.Cut(line, ":")
			applySetting(song, track, strings.ToUpper(strings.TrimSpace(key)), strings.TrimSpace(value), lineNo, &opts)

		default:
			if track == nil {
				opts.warnf("line %d: note data outside of a track, ignoring", lineNo)
				continue
			}
			if ev, ok := parseNoteLine(line, aliases, lineNo, &opts); ok {
				track.Events = append(track.Events, ev)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	song.applyDefaults()
	return song, nil
}

func applySetting(song *Song, track *Track, key, value string, lineNo int, opts *ParseOptions) {
	numeric := func() (float64, bool) {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			opts.warnf("line %d: invalid %s value %q, ignoring", lineNo, key, value)
			return 0, false
		}
		return v, true
	}

	if track != nil {
		switch key {
		case "INSTRUMENT":
			track.Instrument = value
		case "VOLUME":
			if v, ok := numeric(); ok {
				track.Volume = v
			}
		case "TIME_SIGNATURE":
			track.TimeSignature = value
		default:
			opts.warnf("line %d: unknown track setting %q, ignoring", lineNo, key)
		}
		return
	}

	switch key {
	case "TEMPO":
		if v, ok := numeric(); ok {
			song.Tempo = v
		}
	case "SAMPLE_RATE":
		if v, ok := numeric(); ok {
			song.SampleRate = int(v)
		}
	case "MASTER_AMPLITUDE":
		if v, ok := numeric(); ok {
			song.MasterAmplitude = v
		}
	case "OUTPUT_FILE":
		song.Output = value
	default:
		opts.warnf("line %d: unknown global setting %q, ignoring", lineNo, key)
	}
}

// parseNoteLine splits a line into alias tokens and an optional trailing
// duration. Unknown aliases are skipped with a warning.
func parseNoteLine(line string, aliases *Aliases, lineNo int, opts *ParseOptions) (Event, bool) {
	parts := strings.Fields(line)
	beats := 1.0
	if v, err := strconv.ParseFloat(parts[len(parts)-1], 64); err == nil {
		beats = v
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		opts.warnf("line %d: duration without notes, ignoring", lineNo)
		return Event{}, false
	}

	var notes []string
	for _, token := range parts {
		resolved, ok := aliases.Lookup(token)
		if !ok {
			opts.warnf("line %d: unknown alias %q, ignoring", lineNo, token)
			continue
		}
		notes = append(notes, resolved...)
	}
	return Event{Notes: notes, Beats: beats}, true
}
