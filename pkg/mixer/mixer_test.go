package mixer_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/audio"
	"github.com/northcove/go-narrate/pkg/mixer"
)

const testRate = 24000

func newTestMixer() *mixer.Mixer {
	return mixer.New(zap.NewNop())
}

// generateSpeechSine builds a mono clip holding a sine wave.
func generateSpeechSine(frequency, amplitude float64, frames int) *audio.Clip {
	samples := make([]int16, frames)
	for i := range samples {
		v := amplitude * math.Sin(2*math.Pi*frequency*float64(i)/testRate)
		samples[i] = int16(v * 32767)
	}
	return &audio.Clip{Samples: samples, Channels: 1, SampleRate: testRate}
}

// generateBedSine builds a float bed holding a sine wave.
func generateBedSine(frequency, amplitude float64, frames, channels int) *audio.FloatBuffer {
	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
		for i := range chans[ch] {
			chans[ch][i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/testRate)
		}
	}
	return &audio.FloatBuffer{Channels: chans, SampleRate: testRate}
}

func silentSpeech(frames int) *audio.Clip {
	return &audio.Clip{Samples: make([]int16, frames), Channels: 1, SampleRate: testRate}
}

func TestRender_OutputShape(t *testing.T) {
	m := newTestMixer()
	speech := generateSpeechSine(440, 0.3, 1200)
	bed := generateBedSine(220, 0.5, 400, 2)

	out, err := m.Render(speech, bed, 0.25)

	require.NoError(t, err)
	assert.Equal(t, 2, out.NumChannels())
	assert.Equal(t, 1200, out.Frames(), "output frame count always equals speech frame count")
	assert.Equal(t, testRate, out.SampleRate)
}

func TestRender_SpeechCenteredAtUnity(t *testing.T) {
	m := newTestMixer()
	speech := generateSpeechSine(440, 0.3, 600)
	bed := generateBedSine(220, 0.5, 600, 2)

	out, err := m.Render(speech, bed, 0)
	require.NoError(t, err)

	voice := audio.ToFloat(speech).Channels[0]
	for i := range voice {
		assert.Equal(t, voice[i], out.Channels[0][i])
		assert.Equal(t, voice[i], out.Channels[1][i])
	}
}

func TestRender_LoopsShortBed(t *testing.T) {
	m := newTestMixer()
	bedSamples := []float64{0.1, -0.2, 0.3, -0.4, 0.5}
	bed := &audio.FloatBuffer{Channels: [][]float64{bedSamples}, SampleRate: testRate}

	// Speech three times the bed length: the bed tiles exactly.
	out, err := m.Render(silentSpeech(15), bed, 1.0)
	require.NoError(t, err)

	for ch := 0; ch < 2; ch++ {
		for i := 0; i < 15; i++ {
			assert.Equal(t, bedSamples[i%5], out.Channels[ch][i],
				"channel %d frame %d should come from the tiled bed", ch, i)
		}
	}
}

func TestRender_TruncatesLongBed(t *testing.T) {
	m := newTestMixer()
	bed := generateBedSine(100, 0.4, 1800, 1) // 3x the speech length

	out, err := m.Render(silentSpeech(600), bed, 1.0)
	require.NoError(t, err)

	require.Equal(t, 600, out.Frames())
	for i := 0; i < 600; i++ {
		assert.Equal(t, bed.Channels[0][i], out.Channels[0][i])
	}
}

func TestRender_ExactLengthBedUsedOnce(t *testing.T) {
	m := newTestMixer()
	bed := generateBedSine(100, 0.4, 600, 1)

	out, err := m.Render(silentSpeech(600), bed, 1.0)
	require.NoError(t, err)

	require.Equal(t, 600, out.Frames())
	for i := 0; i < 600; i++ {
		assert.Equal(t, bed.Channels[0][i], out.Channels[0][i])
	}
}

func TestRender_MonoBedFeedsBothChannels(t *testing.T) {
	m := newTestMixer()
	bed := &audio.FloatBuffer{Channels: [][]float64{{0.5, -0.5}}, SampleRate: testRate}

	out, err := m.Render(silentSpeech(2), bed, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 0.25, out.Channels[0][0])
	assert.Equal(t, 0.25, out.Channels[1][0])
	assert.Equal(t, -0.25, out.Channels[0][1])
	assert.Equal(t, -0.25, out.Channels[1][1])
}

func TestRender_StereoBedFeedsChannelForChannel(t *testing.T) {
	m := newTestMixer()
	bed := &audio.FloatBuffer{
		Channels:   [][]float64{{0.4}, {-0.8}},
		SampleRate: testRate,
	}

	out, err := m.Render(silentSpeech(1), bed, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 0.2, out.Channels[0][0])
	assert.Equal(t, -0.4, out.Channels[1][0])
}

func TestRender_GainScalesLinearly(t *testing.T) {
	m := newTestMixer()
	speech := generateSpeechSine(440, 0.3, 600)
	bed := generateBedSine(220, 0.5, 600, 2)

	voice := audio.ToFloat(speech).Channels[0]

	low, err := m.Render(speech, bed, 0.2)
	require.NoError(t, err)
	high, err := m.Render(speech, bed, 0.4)
	require.NoError(t, err)

	for ch := 0; ch < 2; ch++ {
		for i := range voice {
			lowBed := low.Channels[ch][i] - voice[i]
			highBed := high.Channels[ch][i] - voice[i]
			assert.InDelta(t, 2*lowBed, highBed, 1e-12,
				"doubling the gain should double the bed contribution")
		}
	}
}

// TestRender_GainScalesSpectrally checks the same property in the frequency
// domain: the bed tone's spectral peak grows with gain while the speech tone
// stays put.
func TestRender_GainScalesSpectrally(t *testing.T) {
	const frames = 2400 // 100 ms; bins are 10 Hz wide
	m := newTestMixer()
	speech := generateSpeechSine(440, 0.3, frames) // bin 44
	bed := generateBedSine(1000, 0.8, frames, 1)   // bin 100

	magnitude := func(gain float64, bin int) float64 {
		out, err := m.Render(speech, bed, gain)
		require.NoError(t, err)
		spectrum := fft.FFTReal(out.Channels[0])
		return cmplx.Abs(spectrum[bin])
	}

	lowBed := magnitude(0.2, 100)
	highBed := magnitude(0.4, 100)
	assert.InDelta(t, 2.0, highBed/lowBed, 0.01)

	lowSpeech := magnitude(0.2, 44)
	highSpeech := magnitude(0.4, 44)
	assert.InDelta(t, 1.0, highSpeech/lowSpeech, 0.01)
}

func TestRender_NoLimitingBeforeConversion(t *testing.T) {
	m := newTestMixer()
	speech := generateSpeechSine(440, 0.9, 600)
	bed := generateBedSine(440, 0.9, 600, 1)

	out, err := m.Render(speech, bed, 1.0)
	require.NoError(t, err)

	peak := 0.0
	for _, v := range out.Channels[0] {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.Greater(t, peak, 1.0, "in-phase sum should exceed the nominal range unclamped")
}

func TestMix_ClampsOverdrivenSamples(t *testing.T) {
	m := newTestMixer()
	// Full-scale speech plus full-gain full-scale bed: every sample overdrives.
	speech := &audio.Clip{Samples: []int16{32767, 32767, -32768, -32768}, Channels: 1, SampleRate: testRate}
	bed := &audio.FloatBuffer{Channels: [][]float64{{1.0, 1.0, -1.0, -1.0}}, SampleRate: testRate}

	clip, err := m.Mix(speech, bed, 1.0)
	require.NoError(t, err)

	for i, s := range clip.Samples {
		if i < 4 {
			assert.Equal(t, int16(32767), s, "positive overdrive clamps")
		} else {
			assert.Equal(t, int16(-32768), s, "negative overdrive clamps")
		}
	}
}

func TestMix_Deterministic(t *testing.T) {
	m := newTestMixer()
	speech := generateSpeechSine(330, 0.4, 960)
	bed := generateBedSine(110, 0.6, 320, 2)

	first, err := m.Mix(speech, bed, 0.35)
	require.NoError(t, err)
	second, err := m.Mix(speech, bed, 0.35)
	require.NoError(t, err)

	assert.Equal(t, first.Samples, second.Samples)
	assert.Equal(t, first.Channels, second.Channels)
	assert.Equal(t, first.SampleRate, second.SampleRate)
}

func TestRender_RejectsBadInput(t *testing.T) {
	m := newTestMixer()
	bed := generateBedSine(220, 0.5, 10, 1)

	stereoSpeech := &audio.Clip{Samples: make([]int16, 4), Channels: 2, SampleRate: testRate}
	_, err := m.Render(stereoSpeech, bed, 0.5)
	assert.ErrorIs(t, err, audio.ErrContractViolation)

	_, err = m.Render(silentSpeech(10), bed, -0.1)
	assert.ErrorIs(t, err, audio.ErrContractViolation)

	_, err = m.Render(silentSpeech(10), bed, 1.1)
	assert.ErrorIs(t, err, audio.ErrContractViolation)
}
