// Package telemetry installs the global tracer provider for the binary.
package telemetry

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"

	"github.com/weegigs/wee-counter-go/internal/config"
)

const ServiceName = "wee-counter"

type Shutdown func(ctx context.Context) error

func ConsoleExporter(w io.Writer) (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
}

func OTLPExporter(ctx context.Context, endpoint string, insecure bool) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
	}

	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}

// Exporter builds the span exporter named by the configuration. It returns a
// nil exporter for TraceExporterNone. Console output goes to console, which
// must not be the screen's writer.
func Exporter(ctx context.Context, cfg config.Config, console io.Writer) (trace.SpanExporter, error) {
	switch cfg.TraceExporter {
	case config.TraceExporterNone, "":
		return nil, nil
	case config.TraceExporterConsole:
		return ConsoleExporter(console)
	case config.TraceExporterOTLP:
		return OTLPExporter(ctx, cfg.OTLPEndpoint, cfg.OTLPInsecure)
	case config.TraceExporterJaeger:
		return JaegerExporter(cfg.JaegerEndpoint)
	default:
		return nil, errors.Errorf("unsupported trace exporter %q", cfg.TraceExporter)
	}
}

// Install registers a tracer provider exporting through exporter as the
// global provider. With a nil exporter spans are still created but dropped.
func Install(exporter trace.SpanExporter) (*trace.TracerProvider, Shutdown) {
	options := []trace.TracerProviderOption{
		trace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
	}

	if exporter != nil {
		options = append(options, trace.WithBatcher(exporter))
	}

	provider := trace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)

	return provider, provider.Shutdown
}
