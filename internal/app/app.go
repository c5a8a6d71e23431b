// Package app provides the main application structure and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/music"
	"github.com/northcove/go-narrate/pkg/pipeline"
)

// Job describes one narration assembly run.
type Job struct {
	// SpeechPath is a file holding the base64 speech payload, or "-" for stdin.
	SpeechPath string

	// MusicSource is an http(s) URL, a local file path, or empty/"none" for
	// unmixed speech.
	MusicSource string

	// Gain is the linear music gain.
	Gain float64

	// OutputPath is where the finished WAV file is written.
	OutputPath string
}

// Application represents the main application with its lifecycle.
type Application struct {
	app *fx.App
}

// New creates a new Application with the provided modules and options. The
// supplied Job is executed once the dependency graph is up; the application
// shuts itself down when the job finishes.
func New(modules ...fx.Option) *Application {
	options := append(modules, fx.Invoke(registerJob))

	return &Application{
		app: fx.New(options...),
	}
}

// Run starts the application and blocks until it's stopped.
func (a *Application) Run() {
	a.app.Run()
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// registerJob schedules the assembly run and ties its completion to shutdown.
// The job context is cancelled on stop so a signal-triggered shutdown aborts
// an in-flight music fetch instead of waiting out its timeout.
func registerJob(lc fx.Lifecycle, sd fx.Shutdowner, job Job, asm *pipeline.Assembler, logger *zap.Logger) {
	jobCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := runJob(jobCtx, job, asm, logger); err != nil {
					logger.Error("Assembly failed", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))

					return
				}
				_ = sd.Shutdown()
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// runJob reads the payload, assembles the narration, and writes the blob.
func runJob(ctx context.Context, job Job, asm *pipeline.Assembler, logger *zap.Logger) error {
	payload, err := readPayload(job.SpeechPath)
	if err != nil {
		return err
	}

	sel := music.None()
	if job.MusicSource != "" && job.MusicSource != music.NoneSource {
		sel = music.Selection{Source: job.MusicSource, Gain: job.Gain}
	}

	blob, err := asm.Assemble(ctx, payload, sel)
	if err != nil {
		return err
	}

	if err := os.WriteFile(job.OutputPath, blob, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", job.OutputPath, err)
	}

	logger.Info("Narration written",
		zap.String("path", job.OutputPath),
		zap.Int("bytes", len(blob)))

	return nil
}

func readPayload(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read speech payload: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}
