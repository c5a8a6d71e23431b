// Package assembly wires the narration pipeline into the Fx graph.
package assembly

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/northcove/go-narrate/internal/config"
	"github.com/northcove/go-narrate/pkg/music"
	"github.com/northcove/go-narrate/pkg/pipeline"
)

// Module provides the music fetcher, music decoder, and assembler.
var Module = fx.Module("assembly",
	fx.Provide(
		NewFetcher,
		NewDecoder,
		NewAssembler,
	),
)

// NewFetcher creates the music fetcher from application configuration.
func NewFetcher(cfg *config.Config, logger *zap.Logger) (*music.Fetcher, error) {
	return music.NewFetcher(
		logger.Named("music"),
		time.Duration(cfg.Music.FetchTimeoutSeconds)*time.Second,
		cfg.Music.CacheEntries,
	)
}

// NewDecoder creates the music decoder targeting the pipeline sample rate.
func NewDecoder(cfg *config.Config, logger *zap.Logger) *music.Decoder {
	return music.NewDecoder(logger.Named("music"), cfg.Pipeline.SampleRate)
}

// NewAssembler creates the pipeline assembler.
func NewAssembler(cfg *config.Config, logger *zap.Logger, fetcher *music.Fetcher, decoder *music.Decoder) *pipeline.Assembler {
	return pipeline.NewAssembler(
		logger.Named("pipeline"),
		fetcher,
		decoder,
		pipeline.Config{
			SampleRate:   cfg.Pipeline.SampleRate,
			MaxMusicGain: cfg.Pipeline.MaxMusicGain,
		},
	)
}
