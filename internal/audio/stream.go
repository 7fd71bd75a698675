// Package audio plays fully rendered mono buffers through the shared
// ebiten audio context. Rendering is always complete before playback
// starts; this is output glue, not part of the synthesis core.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// bufferReader streams a rendered mono buffer as interleaved stereo
// float32 little-endian bytes, the format the audio context consumes.
type bufferReader struct {
	mu      sync.Mutex
	samples []float32
	pos     int
}

func newBufferReader(samples []float32) *bufferReader {
	return &bufferReader{samples: samples}
}

func (r *bufferReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}
	frames := len(p) / 8
	if remaining := len(r.samples) - r.pos; frames > remaining {
		frames = remaining
	}
	if frames == 0 {
		return 0, nil
	}
	for i := 0; i < frames; i++ {
		u := math.Float32bits(r.samples[r.pos+i])
		binary.LittleEndian.PutUint32(p[i*8:], u)
		binary.LittleEndian.PutUint32(p[i*8+4:], u)
	}
	r.pos += frames
	return frames * 8, nil
}

func (r *bufferReader) Close() error { return nil }

type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext initializes the process-wide audio context on first
// use. The context's sample rate is fixed after that.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// NewPlayer prepares playback of a rendered mono buffer.
func NewPlayer(sampleRate int, samples []float32) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := newBufferReader(samples)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{
		player: pl,
		reader: reader,
	}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }
func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position returns the current playback position (what the listener
// actually hears).
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

func (p *Player) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}
