// Package config reads the counter screen settings from the environment.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/united-manufacturing-hub/umh-utils/env"

	"github.com/weegigs/wee-counter-go/counter"
)

type TraceExporter string

const (
	TraceExporterNone    TraceExporter = "none"
	TraceExporterConsole TraceExporter = "console"
	TraceExporterOTLP    TraceExporter = "otlp"
	TraceExporterJaeger  TraceExporter = "jaeger"
)

type Config struct {
	MaxCount     int
	InitialCount int
	BannerTTL    time.Duration

	LogLevel string
	LogFile  string

	TraceExporter  TraceExporter
	TraceFile      string
	OTLPEndpoint   string
	OTLPInsecure   bool
	JaegerEndpoint string

	MetricsFile string
}

// FromEnvironment reads every setting, falling back to defaults for the ones
// that are not set.
func FromEnvironment() (Config, error) {
	var c Config
	var err error

	if c.MaxCount, err = env.GetAsInt("COUNTER_MAX_COUNT", false, counter.DefaultMaxCount); err != nil {
		return Config{}, err
	}

	if c.InitialCount, err = env.GetAsInt("COUNTER_INITIAL_COUNT", false, 0); err != nil {
		return Config{}, err
	}

	ttl, err := env.GetAsString("COUNTER_BANNER_TTL", false, "4s")
	if err != nil {
		return Config{}, err
	}
	if c.BannerTTL, err = time.ParseDuration(ttl); err != nil {
		return Config{}, errors.Wrap(err, "COUNTER_BANNER_TTL")
	}

	if c.LogLevel, err = env.GetAsString("LOGGING_LEVEL", false, "info"); err != nil {
		return Config{}, err
	}

	if c.LogFile, err = env.GetAsString("COUNTER_LOG_FILE", false, ""); err != nil {
		return Config{}, err
	}

	exporter, err := env.GetAsString("COUNTER_TRACE_EXPORTER", false, string(TraceExporterNone))
	if err != nil {
		return Config{}, err
	}
	c.TraceExporter = TraceExporter(strings.ToLower(exporter))

	if c.TraceFile, err = env.GetAsString("COUNTER_TRACE_FILE", false, ""); err != nil {
		return Config{}, err
	}

	if c.OTLPEndpoint, err = env.GetAsString("OTEL_EXPORTER_OTLP_ENDPOINT", false, "localhost:4317"); err != nil {
		return Config{}, err
	}

	if c.OTLPInsecure, err = env.GetAsBool("COUNTER_OTLP_INSECURE", false, true); err != nil {
		return Config{}, err
	}

	if c.JaegerEndpoint, err = env.GetAsString("COUNTER_JAEGER_ENDPOINT", false, "http://localhost:14268/api/traces"); err != nil {
		return Config{}, err
	}

	if c.MetricsFile, err = env.GetAsString("COUNTER_METRICS_FILE", false, ""); err != nil {
		return Config{}, err
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.MaxCount < 0 {
		return errors.Errorf("COUNTER_MAX_COUNT must not be negative, got %d", c.MaxCount)
	}

	if c.InitialCount < 0 || c.InitialCount > c.MaxCount {
		return errors.Errorf("COUNTER_INITIAL_COUNT must be within [0, %d], got %d", c.MaxCount, c.InitialCount)
	}

	if c.BannerTTL <= 0 {
		return errors.Errorf("COUNTER_BANNER_TTL must be positive, got %s", c.BannerTTL)
	}

	switch c.TraceExporter {
	case TraceExporterNone, TraceExporterConsole, TraceExporterOTLP, TraceExporterJaeger:
	default:
		return errors.Errorf("unsupported COUNTER_TRACE_EXPORTER %q", c.TraceExporter)
	}

	return nil
}

// StoreOptions translates the settings into counter.Store options.
func (c Config) StoreOptions() []counter.Option {
	return []counter.Option{
		counter.WithMaxCount(c.MaxCount),
		counter.WithInitialCount(c.InitialCount),
	}
}
