// Package tracing wires OpenTelemetry spans into the HTTP stack.
//
// Middleware starts a server span per request, extracts W3C trace context from
// the incoming headers and echoes the trace id in X-Trace-ID. Responses with a
// 5xx status mark the span as errored.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "ingest.run")
//	defer span.End()
package tracing
