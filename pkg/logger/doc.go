// Package logger builds configured slog loggers with automatic injection
// of request-scoped attributes from context.
//
// The factory produces JSON output for production aggregation or text for
// local development, and wraps the handler with a decorator that runs
// registered context extractors on every record. Registering
// tenant.LoggerExtractor stamps every log line produced on a tenant-scoped
// call path with the tenant ID.
//
//	log := logger.New(
//		logger.WithService("security-svc"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	slog.SetDefault(log)
package logger
