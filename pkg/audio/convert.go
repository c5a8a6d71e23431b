package audio

// Conversion between 16-bit integer PCM and the normalized float working
// representation. The scale is asymmetric on purpose: the signed 16-bit range
// has one more negative value than positive, so floats are expanded with
// 32768 on the negative side and 32767 on the positive side. Changing this
// would change the rendered output.

// ToFloat de-interleaves a clip into per-channel float64 samples. Each
// integer sample maps to s / 32768.
func ToFloat(c *Clip) *FloatBuffer {
	frames := c.Frames()
	channels := make([][]float64, c.Channels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			channels[ch][i] = float64(c.Samples[i*c.Channels+ch]) / 32768.0
		}
	}
	return &FloatBuffer{Channels: channels, SampleRate: c.SampleRate}
}

// ToPCM16 re-interleaves a float buffer into 16-bit PCM. Samples are clamped
// to [-1, 1] first; out-of-range values produced by mixing are hard-limited
// here, not wrapped. The result is truncated toward zero.
func ToPCM16(b *FloatBuffer) *Clip {
	numCh := b.NumChannels()
	frames := b.Frames()
	samples := make([]int16, frames*numCh)
	for ch, data := range b.Channels {
		for i, f := range data {
			samples[i*numCh+ch] = floatToInt16(f)
		}
	}
	return &Clip{Samples: samples, Channels: numCh, SampleRate: b.SampleRate}
}

func floatToInt16(f float64) int16 {
	if f < -1.0 {
		f = -1.0
	} else if f > 1.0 {
		f = 1.0
	}
	if f < 0 {
		return int16(f * 32768)
	}
	return int16(f * 32767)
}
