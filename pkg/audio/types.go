// Package audio provides the PCM sample types and conversions shared by the
// narration assembly pipeline.
package audio

import (
	"fmt"
	"time"
)

// Format constants shared by the pipeline layers.
const (
	// Speech input contract: the TTS provider emits mono 16-bit PCM at 24 kHz.
	SpeechSampleRate = 24_000 // Hz
	SpeechChannels   = 1

	// Mixed output.
	OutputChannels = 2 // interleaved stereo
)

// Clip is interleaved 16-bit PCM tagged with its layout. A Clip is never
// mutated after construction; every pipeline stage produces a new value.
type Clip struct {
	Samples    []int16
	Channels   int
	SampleRate int
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Validate checks the layout tags against the sample data. Violations are
// caller bugs and reported as ErrContractViolation.
func (c *Clip) Validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%w: channel count %d, want >= 1", ErrContractViolation, c.Channels)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d, want > 0", ErrContractViolation, c.SampleRate)
	}
	if len(c.Samples)%c.Channels != 0 {
		return fmt.Errorf("%w: %d samples not divisible by %d channels", ErrContractViolation, len(c.Samples), c.Channels)
	}
	return nil
}

// FloatBuffer holds per-channel float64 samples nominally in [-1, 1]. It is
// the mixer's working representation; values may exceed the nominal range
// after summing and are only clamped on conversion back to integer PCM.
type FloatBuffer struct {
	Channels   [][]float64
	SampleRate int
}

// NumChannels returns the channel count.
func (b *FloatBuffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of samples per channel. Every channel slice holds
// exactly this many samples.
func (b *FloatBuffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}
