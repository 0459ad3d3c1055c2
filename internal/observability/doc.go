// Package observability groups structured logging, Prometheus metrics and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: slog JSON loggers carried through context, with request and run fields
//   - metrics: HTTP, ingestion, classifier and database metrics
//   - tracing: the service tracer and HTTP span middleware
package observability
