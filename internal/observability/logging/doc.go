// Package logging builds the JSON slog logger used by every binary and
// carries it through context.
//
// LOG_LEVEL selects the level (debug, info, warn, error; default info).
// WithRequestID tags a logger with the request id set by the requestid
// middleware; WithRun tags one ingestion run with its kind and run id.
//
//	logger := logging.NewLogger()
//	ctx = logging.WithLogger(ctx, logging.WithRun(logger, "news", runID))
//	logging.FromContext(ctx).Info("run started")
package logging
