package main

import (
	"context"
	"crypto/rand"
	"io"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/internal/config"
	"github.com/weegigs/wee-counter-go/internal/logging"
	"github.com/weegigs/wee-counter-go/internal/metrics"
	"github.com/weegigs/wee-counter-go/internal/telemetry"
	"github.com/weegigs/wee-counter-go/screen"
	"github.com/weegigs/wee-counter-go/stores/memory"
	"github.com/weegigs/wee-counter-go/we"
)

// Session identifies one run of the binary in the journal.
type Session string

type App struct {
	Config  config.Config
	Log     zerolog.Logger
	Tracer  *trace.TracerProvider
	Metrics *metrics.Metrics
	Journal *counter.Journal
	Screen  *screen.Screen
}

func provideConfig() (config.Config, error) {
	return config.FromEnvironment()
}

func provideLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	w, closer, err := logging.Open(cfg.LogFile)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	log, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		closer()
		return zerolog.Nop(), nil, err
	}

	return log, closer, nil
}

func provideTracing(ctx context.Context, cfg config.Config, log zerolog.Logger) (*trace.TracerProvider, func(), error) {
	var console io.Writer = os.Stderr
	closeFile := func() {}
	if cfg.TraceFile != "" {
		f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open trace file %s", cfg.TraceFile)
		}
		console = f
		closeFile = func() { _ = f.Close() }
	}

	exporter, err := telemetry.Exporter(ctx, cfg, console)
	if err != nil {
		closeFile()
		return nil, nil, errors.Wrap(err, "failed to create trace exporter")
	}

	provider, shutdown := telemetry.Install(exporter)

	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
		closeFile()
	}, nil
}

func provideStore(cfg config.Config) (*counter.Store, error) {
	return counter.New(cfg.StoreOptions()...)
}

func provideMetrics(store *counter.Store) (*metrics.Metrics, func()) {
	m := metrics.New()
	return m, m.Track(store)
}

func provideEventStore() *memory.EventStore {
	return memory.NewEventStore()
}

func provideSession() Session {
	return Session(ulid.MustNew(ulid.Now(), rand.Reader).String())
}

func provideJournal(ctx context.Context, events we.EventStore, session Session, log zerolog.Logger, store *counter.Store) (*counter.Journal, func(), error) {
	journal := counter.NewJournal(events, string(session), log)
	if err := journal.Attach(ctx, store); err != nil {
		return nil, nil, err
	}

	return journal, journal.Close, nil
}

func provideScreen(cfg config.Config, store *counter.Store, journal *counter.Journal, m *metrics.Metrics, log zerolog.Logger) *screen.Screen {
	return screen.New(store, journal, m, log, os.Stdout, screen.Settings{BannerTTL: cfg.BannerTTL})
}

var Providers = wire.NewSet(
	provideConfig,
	provideLogger,
	provideTracing,
	provideStore,
	provideMetrics,
	provideEventStore,
	wire.Bind(new(we.EventStore), new(*memory.EventStore)),
	provideSession,
	provideJournal,
	provideScreen,
	wire.Struct(new(App), "*"),
)
