package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "venture-feed"

// GetTracer returns the tracer from the global provider. It is looked up on
// each call so a provider installed after init (tests, exporters) is honored.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start opens an internal span tagged with attrs.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it errored with msg. A nil err is a no-op.
func Fail(span trace.Span, err error, msg string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
