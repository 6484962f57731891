package ratelimiter

import (
	"net"
	"net/http"
	"strconv"
)

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by client address without port. Run it behind a
// middleware that resolves proxies into RemoteAddr, such as chi RealIP.
func ByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MiddlewareConfig configures the HTTP middleware.
type MiddlewareConfig struct {
	// KeyFunc picks the bucket for a request. Defaults to ByIP.
	KeyFunc KeyFunc

	// OnLimited writes the response for rejected requests. Rate limit headers
	// are already set. Defaults to a plain 429.
	OnLimited func(w http.ResponseWriter, r *http.Request, res *Result)

	// OnError handles store failures. Returning true lets the request through.
	// Defaults to a plain 503.
	OnError func(w http.ResponseWriter, r *http.Request, err error) bool
}

// Middleware creates an HTTP middleware for rate limiting.
func Middleware(b *Bucket, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ByIP
	}
	if cfg.OnLimited == nil {
		cfg.OnLimited = func(w http.ResponseWriter, r *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	if cfg.OnError == nil {
		cfg.OnError = func(w http.ResponseWriter, r *http.Request, _ error) bool {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return false
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := b.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				if cfg.OnError(w, r, err) {
					next.ServeHTTP(w, r)
				}
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				// Round up so clients never retry early
				retry := int((result.RetryAfter() + 999_999_999) / 1_000_000_000)
				h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
				cfg.OnLimited(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
