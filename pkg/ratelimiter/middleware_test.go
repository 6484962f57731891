package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/ratelimiter"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
}

func request(remote string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/qr", nil)
	r.RemoteAddr = remote
	return r
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	newLimited := func(t *testing.T, cfg ratelimiter.MiddlewareConfig) http.Handler {
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(memoryFactory(t, clock), ratelimiter.Config{
			Capacity:       2,
			RefillRate:     1,
			RefillInterval: time.Minute,
		})
		require.NoError(t, err)
		return ratelimiter.Middleware(b, cfg)(okHandler())
	}

	t.Run("sets headers and rejects over limit", func(t *testing.T) {
		t.Parallel()
		h := newLimited(t, ratelimiter.MiddlewareConfig{})

		for _, want := range []string{"1", "0"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request("192.0.2.1:1234"))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, want, rec.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("192.0.2.1:9999"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, "port is not part of the key")
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, request("198.51.100.7:1234"))
		assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own bucket")
	})

	t.Run("custom limited response", func(t *testing.T) {
		t.Parallel()
		h := newLimited(t, ratelimiter.MiddlewareConfig{
			KeyFunc: func(r *http.Request) string { return "everyone" },
			OnLimited: func(w http.ResponseWriter, r *http.Request, res *ratelimiter.Result) {
				w.WriteHeader(http.StatusTeapot)
			},
		})

		for range 2 {
			h.ServeHTTP(httptest.NewRecorder(), request("192.0.2.1:1"))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("192.0.2.2:1"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

type failingStore struct{}

func (failingStore) ConsumeTokens(_ context.Context, _ string, _ int, _ ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, ratelimiter.ErrStoreUnavailable
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestMiddlewareStoreError(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, testConfig)
	require.NoError(t, err)

	t.Run("default rejects", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		ratelimiter.Middleware(b, ratelimiter.MiddlewareConfig{})(okHandler()).ServeHTTP(rec, request("192.0.2.1:1"))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("fail open", func(t *testing.T) {
		t.Parallel()
		var seen error
		h := ratelimiter.Middleware(b, ratelimiter.MiddlewareConfig{
			OnError: func(w http.ResponseWriter, r *http.Request, err error) bool {
				seen = err
				return true
			},
		})(okHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("192.0.2.1:1"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, errors.Is(seen, ratelimiter.ErrStoreUnavailable))
	})
}

func TestByIP(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "192.0.2.1", ratelimiter.ByIP(request("192.0.2.1:80")))
	assert.Equal(t, "2001:db8::1", ratelimiter.ByIP(request("[2001:db8::1]:80")))
	assert.Equal(t, "192.0.2.1", ratelimiter.ByIP(request("192.0.2.1")))
}
