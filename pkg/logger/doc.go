// Package logger builds the service's *slog.Logger.
//
// New takes functional options (format, level, output, static attributes,
// context extractors) and wraps the concrete slog handler in a decorator that
// pulls request-scoped values, such as the request id set by the web layer,
// out of the context on every record.
//
// Config mirrors those options for environment-driven setup:
//
//	var cfg logger.Config // BIOPASS_ENV, BIOPASS_LOG_LEVEL, BIOPASS_LOG_FORMAT
//	log := logger.New(logger.WithConfig(cfg), logger.WithContextValue("request_id", key))
//
// The attribute helpers in attr.go keep key names consistent. Session
// attributes deliberately stop at the session id prefix: tokens and key
// material are never logged.
package logger
