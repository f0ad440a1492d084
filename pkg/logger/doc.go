// Package logger builds *slog.Logger values for the service.
//
// New takes functional options for format, level, output and static
// attributes. WithEnvironment applies the per-environment preset (text/debug
// in development, JSON/info in staging and production). NewFromConfig does the
// same from the APP_ENV, LOG_LEVEL and LOG_FORMAT variables.
//
// ContextExtractor callbacks add attributes pulled from the record's context,
// which is how request IDs reach every log line:
//
//	log := logger.New(
//		logger.WithEnvironment("production", "svgstore"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "image uploaded", logger.Filename(name), logger.Size(n))
//
// Attribute helpers keep key names consistent. Error returns an empty
// attribute for a nil error, so it is safe to pass unconditionally.
package logger
