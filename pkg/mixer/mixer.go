// Package mixer renders narrated speech over a looping background track.
package mixer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/audio"
)

// Mixer combines a mono speech clip with a decoded music bed into a stereo
// clip. It holds no per-call state and is safe for concurrent use.
type Mixer struct {
	logger *zap.Logger
}

// New creates a mixer.
func New(logger *zap.Logger) *Mixer {
	return &Mixer{logger: logger}
}

// Render sums speech and the gain-scaled music bed into a stereo float
// buffer of exactly the speech frame count.
//
// Speech is duplicated to both output channels at unity gain. The bed loops
// seamlessly when shorter than the speech and is truncated when longer; a
// mono bed feeds both channels, a stereo bed feeds channel for channel. Sums
// are not limited here: values outside [-1, 1] stay as-is and are only
// clamped when converted back to integer PCM.
func (m *Mixer) Render(speech *audio.Clip, bed *audio.FloatBuffer, gain float64) (*audio.FloatBuffer, error) {
	if err := speech.Validate(); err != nil {
		return nil, err
	}
	if speech.Channels != 1 {
		return nil, fmt.Errorf("%w: speech must be mono, got %d channels", audio.ErrContractViolation, speech.Channels)
	}
	if gain < 0 || gain > 1 {
		return nil, fmt.Errorf("%w: music gain %v outside [0, 1]", audio.ErrContractViolation, gain)
	}

	voice := audio.ToFloat(speech).Channels[0]
	frames := len(voice)
	bedFrames := bed.Frames()

	out := &audio.FloatBuffer{
		Channels:   make([][]float64, audio.OutputChannels),
		SampleRate: speech.SampleRate,
	}
	for ch := 0; ch < audio.OutputChannels; ch++ {
		out.Channels[ch] = make([]float64, frames)
		src := bedChannel(bed, ch)
		for i := 0; i < frames; i++ {
			sample := voice[i]
			if src != nil {
				sample += gain * src[i%bedFrames]
			}
			out.Channels[ch][i] = sample
		}
	}

	m.logger.Debug("rendered mix",
		zap.Int("speech_frames", frames),
		zap.Int("bed_frames", bedFrames),
		zap.Float64("gain", gain))
	return out, nil
}

// Mix renders the stereo float mix and converts it back to interleaved
// 16-bit PCM, clamping any overdriven samples.
func (m *Mixer) Mix(speech *audio.Clip, bed *audio.FloatBuffer, gain float64) (*audio.Clip, error) {
	rendered, err := m.Render(speech, bed, gain)
	if err != nil {
		return nil, err
	}
	return audio.ToPCM16(rendered), nil
}

// bedChannel picks the bed channel feeding output channel ch, or nil when
// the bed is empty.
func bedChannel(bed *audio.FloatBuffer, ch int) []float64 {
	if bed == nil || bed.Frames() == 0 {
		return nil
	}
	if ch >= bed.NumChannels() {
		ch = 0 // mono bed feeds every output channel
	}
	return bed.Channels[ch]
}
