// Package pipeline orchestrates the narration assembly: speech payload
// decoding, optional background-track mixing, and WAV encoding.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/audio"
	"github.com/northcove/go-narrate/pkg/mixer"
	"github.com/northcove/go-narrate/pkg/music"
	"github.com/northcove/go-narrate/pkg/wav"
)

// Fetcher retrieves raw music bytes for a source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Decoder decodes music bytes into per-channel samples at the target rate.
type Decoder interface {
	Decode(data []byte) (*audio.FloatBuffer, error)
}

// Config carries the assembly parameters.
type Config struct {
	// SampleRate of the incoming speech and of the final file.
	SampleRate int

	// MaxMusicGain caps the requested music gain. Requests above the cap are
	// clamped, not rejected.
	MaxMusicGain float64
}

// Assembler turns one speech payload into one finished WAV blob. Calls are
// independent: the assembler holds no mutable state across invocations and
// may be used concurrently.
type Assembler struct {
	logger  *zap.Logger
	fetcher Fetcher
	decoder Decoder
	mixer   *mixer.Mixer
	cfg     Config
}

// NewAssembler creates an assembler.
func NewAssembler(logger *zap.Logger, fetcher Fetcher, decoder Decoder, cfg Config) *Assembler {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = audio.SpeechSampleRate
	}
	if cfg.MaxMusicGain <= 0 {
		cfg.MaxMusicGain = 0.5
	}
	return &Assembler{
		logger:  logger,
		fetcher: fetcher,
		decoder: decoder,
		mixer:   mixer.New(logger),
		cfg:     cfg,
	}
}

type bedResult struct {
	bed *audio.FloatBuffer
	err error
}

// Assemble produces a playable WAV blob from a base64 speech payload and a
// music selection. With no track selected the speech is encoded directly;
// otherwise the track is fetched and decoded concurrently with the speech
// conversion, then mixed underneath it.
//
// Any failure aborts the call with a single typed error
// (audio.ErrMalformedEncoding, music.ErrFetch, music.ErrDecode, or
// audio.ErrContractViolation) and no partial blob. Cancelling ctx aborts an
// in-flight fetch.
func (a *Assembler) Assemble(ctx context.Context, payload string, sel music.Selection) ([]byte, error) {
	// Start the track retrieval before touching the speech so a slow source
	// overlaps with payload conversion.
	var bedCh chan bedResult
	if sel.Enabled() {
		bedCh = make(chan bedResult, 1)
		go a.loadBed(ctx, sel.Source, bedCh)
	}

	samples, err := audio.DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	speech := &audio.Clip{
		Samples:    samples,
		Channels:   audio.SpeechChannels,
		SampleRate: a.cfg.SampleRate,
	}

	if bedCh == nil {
		a.logger.Info("assembling narration",
			zap.Int("speech_frames", speech.Frames()),
			zap.Duration("duration", speech.Duration()),
			zap.Bool("music", false))
		return wav.Encode(speech)
	}

	var res bedResult
	select {
	case res = <-bedCh:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", music.ErrFetch, ctx.Err())
	}
	if res.err != nil {
		return nil, res.err
	}

	gain := sel.Gain
	if gain > a.cfg.MaxMusicGain {
		a.logger.Warn("music gain clamped",
			zap.Float64("requested", gain),
			zap.Float64("cap", a.cfg.MaxMusicGain))
		gain = a.cfg.MaxMusicGain
	}

	a.logger.Info("assembling narration",
		zap.Int("speech_frames", speech.Frames()),
		zap.Duration("duration", speech.Duration()),
		zap.Bool("music", true),
		zap.String("music_source", sel.Source),
		zap.Float64("music_gain", gain))

	mixed, err := a.mixer.Mix(speech, res.bed, gain)
	if err != nil {
		return nil, err
	}
	return wav.Encode(mixed)
}

// loadBed fetches and decodes the selected track. It runs once per call on
// its own goroutine and reports exactly one result.
func (a *Assembler) loadBed(ctx context.Context, source string, out chan<- bedResult) {
	data, err := a.fetcher.Fetch(ctx, source)
	if err != nil {
		out <- bedResult{err: err}
		return
	}
	bed, err := a.decoder.Decode(data)
	out <- bedResult{bed: bed, err: err}
}
