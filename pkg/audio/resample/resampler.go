// Package resample converts audio between sample rates using linear
// interpolation. Quality is adequate for background beds; speech is never
// resampled by the pipeline.
package resample

import "github.com/northcove/go-narrate/pkg/audio"

// Channel resamples a single channel from srcRate to dstRate. Equal rates
// return the input unchanged.
func Channel(src []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(src) == 0 {
		return src
	}

	ratio := float64(srcRate) / float64(dstRate)
	outFrames := int(float64(len(src)) / ratio)
	if outFrames == 0 {
		return nil
	}

	out := make([]float64, outFrames)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = src[idx]*(1.0-frac) + src[idx+1]*frac
	}
	return out
}

// Buffer resamples every channel of a float buffer to dstRate. All channels
// keep identical frame counts.
func Buffer(b *audio.FloatBuffer, dstRate int) *audio.FloatBuffer {
	if b.SampleRate == dstRate {
		return b
	}

	channels := make([][]float64, b.NumChannels())
	frames := -1
	for ch, data := range b.Channels {
		channels[ch] = Channel(data, b.SampleRate, dstRate)
		if frames < 0 || len(channels[ch]) < frames {
			frames = len(channels[ch])
		}
	}
	// Trim ragged ends so the frame-count invariant holds.
	for ch := range channels {
		channels[ch] = channels[ch][:frames]
	}
	return &audio.FloatBuffer{Channels: channels, SampleRate: dstRate}
}
