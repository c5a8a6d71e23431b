package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PipelineConfig stores assembly parameters.
type PipelineConfig struct {
	SampleRate   int     `yaml:"sample_rate"`
	MaxMusicGain float64 `yaml:"max_music_gain"`
}

// MusicConfig stores track retrieval parameters.
type MusicConfig struct {
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	CacheEntries        int `yaml:"cache_entries"`
}

// Config stores the application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Music    MusicConfig    `yaml:"music"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			SampleRate:   24_000,
			MaxMusicGain: 0.5,
		},
		Music: MusicConfig{
			FetchTimeoutSeconds: 30,
			CacheEntries:        8,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration from the given file path, falling back
// to defaults when the file does not exist. Fields omitted from the file
// keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}

	if cfg.Pipeline.SampleRate <= 0 {
		return nil, fmt.Errorf("config %s: pipeline.sample_rate must be positive", filePath)
	}
	if cfg.Pipeline.MaxMusicGain <= 0 || cfg.Pipeline.MaxMusicGain > 1 {
		return nil, fmt.Errorf("config %s: pipeline.max_music_gain must be in (0, 1]", filePath)
	}
	return cfg, nil
}
