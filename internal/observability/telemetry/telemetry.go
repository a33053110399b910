// Package telemetry configura tracing OpenTelemetry (exporter OTLP/gRPC).
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// Config del exporter. Endpoint vacío deshabilita el tracing.
type Config struct {
	ServiceName string
	Version     string
	Endpoint    string
	Insecure    bool
}

// ShutdownFunc flushea y cierra el provider.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup instala el TracerProvider global. Nunca falla: ante errores del
// exporter loguea y sigue sin tracing.
func Setup(ctx context.Context, cfg Config) ShutdownFunc {
	log := logger.L().With(logger.Component("telemetry"))
	if cfg.Endpoint == "" {
		log.Debug("tracing disabled")
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.Warn("otel exporter error", logger.Err(err))
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		log.Warn("otel resource error", logger.Err(err))
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Info("tracing enabled", logger.String("endpoint", cfg.Endpoint))

	return provider.Shutdown
}
