// Package telemetry builds the process-wide logger and tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
)

// NewLogger returns a *slog.Logger writing to w, configured for env.
//
// Development: human-readable text output at DEBUG level.
// Production: machine-readable JSON output at INFO level.
func NewLogger(env config.Environment, w io.Writer) (*slog.Logger, error) {
	switch env {
	case config.Production:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})), nil
	case config.Development:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})), nil
	default:
		return nil, fmt.Errorf("telemetry.NewLogger: unsupported environment %q", env)
	}
}

// Init installs logger as the slog default.
func Init(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// NewTracerProvider creates an SDK tracer provider tagged with serviceName
// and registers it globally. Callers must Shutdown it on exit.
func NewTracerProvider(serviceName string, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	}, opts...)

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

// NewSpanExporter writes every finished span, with its attributes, to w as
// one JSON document per span.
func NewSpanExporter(w io.Writer) (sdktrace.SpanExporter, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("telemetry.NewSpanExporter: %w", err)
	}
	return exp, nil
}

// TraceAttrs returns the trace and span ids of the span in ctx as log
// attributes, or nothing when ctx carries no recording span.
func TraceAttrs(ctx context.Context) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []any{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
}
