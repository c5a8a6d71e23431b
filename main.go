// Package main provides the entry point for the narration assembly tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/northcove/go-narrate/internal/app"
	"github.com/northcove/go-narrate/internal/assembly"
	"github.com/northcove/go-narrate/internal/config"
	"github.com/northcove/go-narrate/internal/infrastructure"
)

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to the configuration file")
		speechPath  = flag.String("speech", "-", "file holding the base64 speech payload, or - for stdin")
		musicSource = flag.String("music", "none", "background track: http(s) URL, file path, or none")
		gain        = flag.Float64("gain", 0.25, "music gain in [0, 0.5]")
		outputPath  = flag.String("out", "narration.wav", "output WAV path")
	)
	flag.Parse()

	job := app.Job{
		SpeechPath:  *speechPath,
		MusicSource: *musicSource,
		Gain:        *gain,
		OutputPath:  *outputPath,
	}
	if job.SpeechPath == "" {
		fmt.Fprintln(os.Stderr, "missing -speech payload path")
		os.Exit(2)
	}

	application := app.New(
		// Core modules
		config.Module,
		infrastructure.LoggerModule,

		// Pipeline wiring
		assembly.Module,

		// Per-run inputs
		fx.Supply(*configPath, job),

		// Route Fx's own logging through Zap
		fx.WithLogger(infrastructure.NewFxLoggerAdapter),
	)

	// Run blocks until the job triggers shutdown (or a signal arrives) and
	// exits with the code the job reported.
	application.Run()
}
