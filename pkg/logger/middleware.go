package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// MiddlewareConfig configures the HTTP access log middleware.
type MiddlewareConfig struct {
	// Skip excludes matching requests from logging (e.g. health probes).
	Skip func(r *http.Request) bool

	// SlowRequestThreshold raises successful requests slower than this to warn level.
	SlowRequestThreshold time.Duration
}

// Middleware returns an access log middleware. Every request produces one
// record: 5xx at error, 4xx and slow requests at warn, the rest at info.
func Middleware(log *slog.Logger, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest, elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
			}

			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				Duration(elapsed),
				Component("http"),
			)
		})
	}
}
