package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	songforge "github.com/cbegin/songforge-go"
	"github.com/cbegin/songforge-go/internal/analysis"
	"github.com/cbegin/songforge-go/internal/audio"
	"github.com/cbegin/songforge-go/internal/songfile"
)

const demoSongText = `# Built-in demo: Twinkle Twinkle with chord pads and a drum beat.
TEMPO: 100
MASTER_AMPLITUDE: 0.8
OUTPUT_FILE: demo.wav

[TRACK: melody]
INSTRUMENT: piano
VOLUME: 0.7
C4 1
C4 1
G4 1
G4 1
A4 1
A4 1
G4 2
F4 1
F4 1
E4 1
E4 1
D4 1
D4 1
C4 2

[TRACK: pads]
INSTRUMENT: sawtooth
VOLUME: 0.25
C_MAJOR 4
F_MAJOR 2
C_MAJOR 2
F_MAJOR 2
C_MAJOR 2
G_MAJOR 2
C_MAJOR 2

[TRACK: beat]
INSTRUMENT: drums
VOLUME: 0.6
[REPEAT: 3]
KICK 1
HAT 1
SNARE 1
HAT 1
`

func main() {
	var (
		songPath = flag.String("file", "", "path to a song file (.song text or .yaml)")
		outPath  = flag.String("o", "", "output WAV path (default: the song's OUTPUT_FILE setting)")
		format   = flag.String("format", "pcm16", "WAV sample format: pcm16|float32")
		play     = flag.Bool("play", false, "play the rendered song through the audio device")
		analyze  = flag.Bool("analyze", false, "print per-track dominant frequency and peak")
		refPitch = flag.Float64("ref-pitch", 0, "A4 reference pitch in Hz (0 = 440)")
		strict   = flag.Bool("strict", false, "fail on unknown instruments instead of skipping the track")
	)
	flag.Parse()

	encode, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	opts := []songforge.Option{
		songforge.WithReferencePitch(*refPitch),
		songforge.WithStrictTracks(*strict),
		songforge.WithOnWarning(func(msg string) { log.Printf("warning: %s", msg) }),
	}

	song, err := resolveSongInput(*songPath, opts)
	if err != nil {
		log.Fatal(err)
	}

	if *analyze {
		reportTracks(song, opts)
	}

	master, err := songforge.RenderSong(song, opts...)
	if err != nil {
		log.Fatal(err)
	}

	target := *outPath
	if target == "" {
		target = song.Output
	}
	data := encode(master, song.SampleRate)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		log.Fatal(err)
	}
	duration := time.Duration(float64(len(master)) / float64(song.SampleRate) * float64(time.Second))
	fmt.Printf("wrote %s (%s, %s)\n", target, humanize.Bytes(uint64(len(data))), duration.Round(10*time.Millisecond))

	if *play {
		if err := playBuffer(song.SampleRate, master); err != nil {
			log.Fatal(err)
		}
	}
}

func resolveSongInput(path string, opts []songforge.Option) (*songfile.Song, error) {
	if strings.TrimSpace(path) != "" {
		return songforge.LoadSong(path, opts...)
	}
	return songfile.Parse(strings.NewReader(demoSongText), songfile.ParseOptions{
		OnWarning: func(msg string) { log.Printf("warning: %s", msg) },
	})
}

func parseFormat(name string) (func([]float32, int) []byte, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pcm16":
		return func(samples []float32, sampleRate int) []byte {
			return songforge.EncodeWAVInt16LE(samples, sampleRate, 1)
		}, nil
	case "float32":
		return func(samples []float32, sampleRate int) []byte {
			return songforge.EncodeWAVFloat32LE(samples, sampleRate, 1)
		}, nil
	default:
		return nil, fmt.Errorf("invalid -format %q (expected pcm16|float32)", name)
	}
}

// reportTracks renders each track in isolation and prints a short
// spectral summary. Render errors here are reported and skipped; the
// main render decides whether they are fatal.
func reportTracks(song *songfile.Song, opts []songforge.Option) {
	for _, tr := range song.Tracks {
		samples, err := songforge.RenderTrack(tr, song.Tempo, song.SampleRate, opts...)
		if err != nil {
			log.Printf("analyze %q: %v", tr.Name, err)
			continue
		}
		seconds := float64(len(samples)) / float64(song.SampleRate)
		fmt.Printf("track %-12q %6.2fs  peak %.3f  dominant %7.1f Hz\n",
			tr.Name, seconds, analysis.Peak(samples), analysis.DominantFrequency(samples, song.SampleRate))
	}
}

func playBuffer(sampleRate int, samples []float32) error {
	pl, err := audio.NewPlayer(sampleRate, samples)
	if err != nil {
		return err
	}
	pl.Play()
	for pl.IsPlaying() {
		time.Sleep(100 * time.Millisecond)
	}
	fmt.Println("playback completed")
	return pl.Stop()
}
