package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/qrgen/pkg/binder"
	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/requestid"
)

// genericErrorMessage is shown for server errors so internals do not leak.
const genericErrorMessage = "An error occurred processing your request"

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Err        error // HTTPError or ValidationError safe to expose to clients
	LogLevel   slog.Level
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// ClassifyError maps err onto a client facing error and status code.
// Binder failures become 400/413/415, HTTPError and ValidationError keep their
// own status, anything else is reported as a generic 500.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Err:        ErrInternalServerError.WithMessage(genericErrorMessage),
	}

	var (
		valErr  ValidationError
		httpErr HTTPError
	)
	switch {
	case errors.As(err, &valErr):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Err = valErr
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Err = httpErr
		if httpErr.Code >= http.StatusInternalServerError {
			info.Err = httpErr.WithMessage(genericErrorMessage)
		}
	case errors.Is(err, binder.ErrRequestTooLarge):
		info.StatusCode = http.StatusRequestEntityTooLarge
		info.Err = ErrRequestEntityTooLarge.WithMessage(err.Error())
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Err = ErrUnsupportedMediaType.WithMessage(err.Error())
	case errors.Is(err, binder.ErrFailedToParseJSON):
		info.StatusCode = http.StatusBadRequest
		info.Err = ErrBadRequest.WithMessage(err.Error())
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// logError logs the error with request context
func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates the default error handler. Errors are logged and
// written as JSON error envelopes.
// Configure this once in main.go and pass to all modules.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := ClassifyError(err)
		logError(log, ctx, err, info)

		resp := JSONError(info.Err, WithJSONStatus(info.StatusCode))
		if renderErr := resp.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
