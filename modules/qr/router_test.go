package qr_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/handler"
	"github.com/dmitrymomot/qrgen/modules/qr"
	"github.com/dmitrymomot/qrgen/pkg/ratelimiter"
	"github.com/dmitrymomot/qrgen/svc/generator"
)

func newRouter(t *testing.T, mutate ...func(*qr.RouterOptions)) http.Handler {
	t.Helper()
	opts := qr.RouterOptions{
		Service: generator.New(generator.WithCache(generator.NewMemoryCache(16, time.Minute))),
	}
	for _, m := range mutate {
		m(&opts)
	}
	return qr.Router(opts)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *handler.ErrorDetail {
	t.Helper()
	var resp handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestGenerateEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("svg", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"wifi","data":{"ssid":"Home","password":"pass"},"format":"svg"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Equal(t, "inline; filename=qr.svg", w.Header().Get("Content-Disposition"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "<svg"))
	})

	t.Run("png by default", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"url","data":{"url":"example.com/png-default"}}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "inline; filename=qr.png", w.Header().Get("Content-Disposition"))

		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
	})

	t.Run("second render is served from cache", func(t *testing.T) {
		t.Parallel()
		body := `{"type":"text","data":{"text":"cache me"},"format":"svg","scale":3}`

		first := post(t, h, "/api/qr", body)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "miss", first.Header().Get("X-QR-Cache"))

		second := post(t, h, "/api/qr", body)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, "hit", second.Header().Get("X-QR-Cache"))
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	})
}

func TestGenerateEndpointErrors(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("wifi without ssid names the field", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"wifi","data":{"password":"x"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "validation_error", detail.Code)
		assert.Equal(t, []string{"is required"}, detail.Details["ssid"])
		assert.Contains(t, w.Body.String(), "ssid")
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"vcard","data":{}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "invalid_kind", detail.Code)
		assert.Contains(t, detail.Message, "mecard")
	})

	t.Run("invalid option", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"text","data":{"text":"x"},"scale":0}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		detail := decodeError(t, w)
		assert.Contains(t, detail.Details, "scale")
	})

	t.Run("png too large for the pixel limit", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 1000)
		w := post(t, h, "/api/qr", `{"type":"text","data":{"text":"`+text+`"},"error":"L","scale":50}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "scale")
	})

	t.Run("invalid color", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"text","data":{"text":"x"},"dark":"not-a-color"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "dark")
	})

	t.Run("invalid field", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"wifi","data":{"ssid":"x","security":"WPA9"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "security")
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("x", 5000)
		w := post(t, h, "/api/qr", `{"type":"text","data":{"text":"`+text+`"},"error":"H"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "encoding_failed", decodeError(t, w).Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Code)
	})

	t.Run("unknown top level field", func(t *testing.T) {
		t.Parallel()
		w := post(t, h, "/api/qr", `{"type":"text","data":{"text":"x"},"colour":"red"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/api/qr", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}

func TestPayloadEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	w := post(t, h, "/api/qr/payload", `{"type":"sms","data":{"number":"+1555","message":"Hi there"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"type":"sms","payload":"sms:+1555?body=Hi%20there"}}`, w.Body.String())

	w = post(t, h, "/api/qr/payload", `{"type":"tel","data":{"number":15551234567}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"type":"tel","payload":"tel:15551234567"}}`, w.Body.String())

	w = post(t, h, "/api/qr/payload", `{"type":"sms","data":{"number":1e3,"message":5.50}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"type":"sms","payload":"sms:1000?body=5.5"}}`, w.Body.String())

	w = post(t, h, "/api/qr/payload", `{"type":"wifi","data":{"ssid":"Home","hidden":1}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"type":"wifi","payload":"WIFI:T:WPA;S:Home;H:true;;"}}`, w.Body.String())

	w = post(t, h, "/api/qr/payload", `{"type":"email","data":{}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "to")
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	get := func(h http.Handler) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		return w
	}

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		w := get(newRouter(t))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"status":"ok"}}`, w.Body.String())
	})

	t.Run("passing check", func(t *testing.T) {
		t.Parallel()
		w := get(newRouter(t, func(o *qr.RouterOptions) {
			o.Checks = map[string]qr.HealthCheck{
				"redis": func(context.Context) error { return nil },
			}
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"status":"ok","checks":{"redis":"ok"}}}`, w.Body.String())
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()
		w := get(newRouter(t, func(o *qr.RouterOptions) {
			o.Checks = map[string]qr.HealthCheck{
				"redis": func(context.Context) error { return errors.New("connection refused") },
			}
		}))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"data":{"status":"degraded","checks":{"redis":"unavailable"}}}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestIndexPage(t *testing.T) {
	t.Parallel()
	h := newRouter(t, func(o *qr.RouterOptions) { o.Title = "QR <Studio>" })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<title>QR &lt;Studio&gt;</title>")
	assert.Contains(t, body, `src="data:image/svg+xml;base64,`)
	assert.Contains(t, body, `/assets/app.js`)
	for _, kind := range []string{"text", "url", "tel", "sms", "email", "wifi", "mecard"} {
		assert.Contains(t, body, `<option value="`+kind+`">`)
		assert.Contains(t, body, `data-kind="`+kind+`"`)
	}
	assert.Contains(t, body, `name="data.ssid"`)
}

func TestAssets(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	for path, contentType := range map[string]string{
		"/assets/app.js":    "javascript",
		"/assets/style.css": "text/css",
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), contentType, path)
		body, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	h := newRouter(t, func(o *qr.RouterOptions) {
		o.RateLimit = ratelimiter.Middleware(bucket, ratelimiter.MiddlewareConfig{})
	})

	body := `{"type":"text","data":{"text":"limited"},"format":"svg"}`
	assert.Equal(t, http.StatusOK, post(t, h, "/api/qr", body).Code)
	assert.Equal(t, http.StatusOK, post(t, h, "/api/qr", body).Code)

	w := post(t, h, "/api/qr", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// the payload preview renders nothing and costs no token
	pw := post(t, h, "/api/qr/payload", body)
	assert.Equal(t, http.StatusOK, pw.Code)
	assert.Empty(t, pw.Header().Get("X-RateLimit-Limit"))

	// health and page stay reachable
	hw := httptest.NewRecorder()
	h.ServeHTTP(hw, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, hw.Code)
}
