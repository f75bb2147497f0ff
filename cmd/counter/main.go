package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, cleanup, err := initialise(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer cleanup()

	app.Log.Info().
		Str("session", app.Journal.Id().String()).
		Int("max_count", app.Config.MaxCount).
		Str("trace_exporter", string(app.Config.TraceExporter)).
		Msg("session started")

	err = app.Screen.Run(ctx, os.Stdin)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if state, replayErr := app.Journal.Replay(context.Background()); replayErr == nil {
		app.Log.Info().Int("counter", state.Counter).Msg("session ended")
	} else {
		app.Log.Warn().Err(replayErr).Msg("failed to replay journal")
	}

	if writeErr := app.Metrics.WriteTo(app.Config.MetricsFile); writeErr != nil {
		app.Log.Error().Err(writeErr).Msg("failed to write metrics")
	}

	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
