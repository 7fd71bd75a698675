package songforge

import (
	"encoding/binary"
	"math"
)

// EncodeWAVInt16LE quantizes a float buffer in [-1, 1] to 16-bit PCM and
// wraps it in a WAV container. Samples outside the range are clipped, not
// wrapped.
func EncodeWAVInt16LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 2
	out := make([]byte, 44+dataSize)
	writeWAVHeader(out, wavFormatPCM, 16, dataSize, sampleRate, channels)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(int16(s*32767)))
	}
	return out
}

// EncodeWAVFloat32LE wraps a float buffer in a WAV container without
// quantization.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	out := make([]byte, 44+dataSize)
	writeWAVHeader(out, wavFormatFloat, 32, dataSize, sampleRate, channels)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

func writeWAVHeader(out []byte, formatTag uint16, bitsPerSample, dataSize, sampleRate, channels int) {
	bytesPerSample := bitsPerSample / 8
	byteRate := sampleRate * channels * bytesPerSample
	blockAlign := channels * bytesPerSample

	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], formatTag)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], uint16(bitsPerSample))
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
}
