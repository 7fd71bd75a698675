package songfile

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDemoSong(t *testing.T) {
	song, err := Load(filepath.Join("testdata", "demo.song"), ParseOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if song.Tempo != 140 {
		t.Errorf("tempo %f, want 140", song.Tempo)
	}
	if song.SampleRate != 22050 {
		t.Errorf("sample rate %d, want 22050", song.SampleRate)
	}
	if song.MasterAmplitude != 0.8 {
		t.Errorf("master amplitude %f, want 0.8", song.MasterAmplitude)
	}
	if song.Output != "demo.wav" {
		t.Errorf("output %q, want demo.wav", song.Output)
	}
	if len(song.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(song.Tracks))
	}

	melody := song.Tracks[0]
	if melody.Name != "melody" || melody.Instrument != "piano" || melody.Volume != 0.7 {
		t.Errorf("unexpected melody track: %+v", melody)
	}
	if len(melody.Events) != 9 {
		t.Fatalf("melody: expected 9 events, got %d", len(melody.Events))
	}
	if ev := melody.Events[7]; len(ev.Notes) != 0 || ev.Beats != 1 {
		t.Errorf("REST event: %+v", ev)
	}
	if ev := melody.Events[8]; len(ev.Notes) != 3 || ev.Beats != 2 {
		t.Errorf("C_MAJOR event should expand to a triad: %+v", ev)
	}

	beat := song.Tracks[1]
	if beat.Instrument != "drums" {
		t.Errorf("beat instrument %q", beat.Instrument)
	}
	// 4 events repeated once more.
	if len(beat.Events) != 8 {
		t.Fatalf("beat: expected 8 events after repeat, got %d", len(beat.Events))
	}
	if ev := beat.Events[3]; len(ev.Notes) != 2 {
		t.Errorf("SNARE_HAT should expand to 2 notes: %+v", ev)
	}
	if beat.TimeSignature != DefaultTimeSignature {
		t.Errorf("beat time signature %q, want default", beat.TimeSignature)
	}
}

func TestParseDefaultsAndDurationlessLines(t *testing.T) {
	in := `
[TRACK: t]
C4
E4 G4
`
	song, err := Parse(strings.NewReader(in), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if song.Tempo != DefaultTempo || song.SampleRate != DefaultSampleRate {
		t.Errorf("global defaults not applied: %+v", song)
	}
	tr := song.Tracks[0]
	if tr.Instrument != DefaultInstrument || tr.Volume != DefaultVolume {
		t.Errorf("track defaults not applied: %+v", tr)
	}
	if tr.Events[0].Beats != 1 {
		t.Errorf("duration should default to 1, got %f", tr.Events[0].Beats)
	}
	if len(tr.Events[1].Notes) != 2 {
		t.Errorf("expected 2-note chord line, got %+v", tr.Events[1])
	}
}

func TestParseWarnsAndRecovers(t *testing.T) {
	in := `
BOGUS_SETTING: 12
[TRACK: t]
NOT_A_SETTING: x
C4 NOPE 1
0.5
[REPEAT: x]
`
	var warnings []string
	song, err := Parse(strings.NewReader(in), ParseOptions{
		OnWarning: func(msg string) { warnings = append(warnings, msg) },
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(song.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(song.Tracks))
	}
	// The C4 survives its line's unknown alias.
	if len(song.Tracks[0].Events) != 1 || len(song.Tracks[0].Events[0].Notes) != 1 {
		t.Fatalf("unexpected events: %+v", song.Tracks[0].Events)
	}
	if len(warnings) != 5 {
		t.Fatalf("expected 5 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestParseNoteDataOutsideTrack(t *testing.T) {
	var warned bool
	song, err := Parse(strings.NewReader("C4 1\n"), ParseOptions{
		OnWarning: func(string) { warned = true },
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(song.Tracks) != 0 || !warned {
		t.Fatalf("expected no tracks and a warning, got %+v warned=%v", song.Tracks, warned)
	}
}

func TestParseYAMLExpandsAliases(t *testing.T) {
	in := []byte(`
tempo: 90
tracks:
  - name: beat
    instrument: drums
    volume: 0.6
    events:
      - {notes: [KICK], beats: 1}
      - {notes: [C_major], beats: 2}
      - {notes: [C7], beats: 1}
`)
	song, err := ParseYAML(in, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if song.Tempo != 90 {
		t.Errorf("tempo %f, want 90", song.Tempo)
	}
	events := song.Tracks[0].Events
	if got := events[0].Notes; len(got) != 1 || got[0] != "C4" {
		t.Errorf("KICK should expand to [C4], got %v", got)
	}
	if len(events[1].Notes) != 3 {
		t.Errorf("C_major should expand to a triad, got %v", events[1].Notes)
	}
	// Outside the alias range; passes through for the calculator.
	if got := events[2].Notes; len(got) != 1 || got[0] != "C7" {
		t.Errorf("unknown token should pass through, got %v", got)
	}
}

func TestParseYAMLRejectsGarbage(t *testing.T) {
	if _, err := ParseYAML([]byte("{not yaml"), ParseOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	song := &Song{
		Tempo: 100,
		Tracks: []Track{{
			Name:       "t",
			Instrument: "bass",
			Volume:     0.4,
			Events:     []Event{{Notes: []string{"C2"}, Beats: 1}},
		}},
	}
	data, err := EncodeYAML(song)
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}
	back, err := ParseYAML(data, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if back.Tempo != 100 || back.Tracks[0].Instrument != "bass" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestDefaultAliases(t *testing.T) {
	a := DefaultAliases()

	rest, ok := a.Lookup("rest")
	if !ok || len(rest) != 0 {
		t.Errorf("REST should resolve to no notes, got %v ok=%v", rest, ok)
	}

	for name, want := range map[string][]string{
		"C4":          {"C4"},
		"c4":          {"C4"},
		"CSHARP3":     {"C#3"},
		"C#3":         {"C#3"},
		"KICK":        {"C4"},
		"TOM":         {"F4"},
		"KICK_HAT":    {"C4", "G4"},
		"C_MAJOR":     {"C4", "E4", "G4"},
		"A4_MINOR":    {"A4", "C5", "E5"},
		"C4_DIM":      {"C4", "D#4", "F#4"},
		"ASHARP2_AUG": {"A#2", "D3", "F#3"},
	} {
		got, ok := a.Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): not found", name)
			continue
		}
		if len(got) != len(want) {
			t.Errorf("Lookup(%q) = %v, want %v", name, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Lookup(%q) = %v, want %v", name, got, want)
				break
			}
		}
	}

	if _, ok := a.Lookup("C9"); ok {
		t.Error("C9 is outside the prefilled range")
	}
}

func TestAliasLookupReturnsCopy(t *testing.T) {
	a := DefaultAliases()
	first, _ := a.Lookup("KICK_HAT")
	first[0] = "Z9"
	second, _ := a.Lookup("KICK_HAT")
	if second[0] != "C4" {
		t.Fatal("Lookup must return a defensive copy")
	}
}
