package support

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"google.golang.org/grpc/credentials"
)

// honeycombClient sends spans over OTLP gRPC, naming the team and dataset in
// the request headers.
func honeycombClient(config TelemetryConfig) otlptracegrpc.Option {
	return otlptracegrpc.WithHeaders(map[string]string{
		"x-honeycomb-team":    config.HoneycombTeam,
		"x-honeycomb-dataset": config.HoneycombDataset,
	})
}

// NewExporter creates the span exporter named by the config. It returns nil
// when telemetry is disabled.
func NewExporter(ctx context.Context, config TelemetryConfig) (sdktrace.SpanExporter, error) {
	switch config.Exporter {
	case ConsoleExporter:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case HoneycombExporter:
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(config.HoneycombEndpoint),
			otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
			honeycombClient(config),
		)
	case JaegerExporter:
		return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(config.JaegerEndpoint)))
	case NoExporter, "":
		return nil, nil
	default:
		return nil, errors.Errorf("unknown exporter %q", config.Exporter)
	}
}

func serviceResource(config TelemetryConfig) *resource.Resource {
	name := config.ServiceName
	if name == "" {
		name = DefaultServiceName
	}

	return resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(name))
}

// InitTelemetry installs the global tracer provider for the configured exporter. The
// returned cleanup flushes and stops it.
func InitTelemetry(ctx context.Context, config Config) (*sdktrace.TracerProvider, func(), error) {
	exporter, err := NewExporter(ctx, config.Telemetry)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %s exporter", config.Telemetry.Exporter)
	}

	options := []sdktrace.TracerProviderOption{sdktrace.WithResource(serviceResource(config.Telemetry))}
	if exporter != nil {
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = provider.Shutdown(ctx)
	}

	return provider, cleanup, nil
}
