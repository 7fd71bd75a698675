// Package mixer sums independently rendered track waveforms into one
// master waveform with per-track gain, overflow-safe normalization, and a
// final hard clip.
package mixer

import "github.com/viterin/vek/vek32"

// Track pairs a rendered waveform with its mix volume.
type Track struct {
	Samples []float32
	Volume  float64
}

// Mix sums the tracks into a buffer as long as the longest input; shorter
// tracks contribute silence past their own length. Volumes are clamped to
// be non-negative. If the summed peak exceeds 1.0 the whole buffer is
// rescaled by 1/peak, preserving inter-track balance, then scaled by
// masterAmplitude (clamped to [0,1]) and hard-clipped to [-1,1]. An empty
// track list yields an empty buffer, not an error.
func Mix(tracks []Track, masterAmplitude float64) []float32 {
	maxLen := 0
	for _, tr := range tracks {
		if len(tr.Samples) > maxLen {
			maxLen = len(tr.Samples)
		}
	}
	master := make([]float32, maxLen)
	if maxLen == 0 {
		return master
	}

	scaled := make([]float32, maxLen)
	for _, tr := range tracks {
		if len(tr.Samples) == 0 {
			continue
		}
		volume := tr.Volume
		if volume < 0 {
			volume = 0
		}
		region := scaled[:len(tr.Samples)]
		vek32.MulNumber_Into(region, tr.Samples, float32(volume))
		vek32.Add_Inplace(master[:len(tr.Samples)], region)
	}

	if peak := absPeak(master); peak > 1.0 {
		vek32.MulNumber_Inplace(master, 1/peak)
	}

	if masterAmplitude < 0 {
		masterAmplitude = 0
	} else if masterAmplitude > 1 {
		masterAmplitude = 1
	}
	vek32.MulNumber_Inplace(master, float32(masterAmplitude))

	// The rescale above should make this a no-op; it guards float error.
	clip(master)
	return master
}

func absPeak(buf []float32) float32 {
	peak := vek32.Max(buf)
	if low := -vek32.Min(buf); low > peak {
		peak = low
	}
	return peak
}

func clip(buf []float32) {
	for i, s := range buf {
		if s > 1 {
			buf[i] = 1
		} else if s < -1 {
			buf[i] = -1
		}
	}
}
