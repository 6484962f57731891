// Package logger builds *slog.Logger instances with consistent attributes.
//
// New creates a logger configured by functional options: output format
// (json or text), level, static attributes and ContextExtractor callbacks
// that pull request-scoped values, such as the request id, out of the
// context on every record. WithEnvironment picks sensible per-environment
// defaults and tags records with service and env.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.AppName),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers in attr.go (Error, RequestID, Component, Kind, ...) keep
// key names uniform. Error and Errors return an empty attribute for nil
// errors, so they can be passed unconditionally.
//
// Middleware writes one access log record per HTTP request.
package logger
