package binder_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/binder"
)

type request struct {
	Type  string         `json:"type"`
	Data  map[string]any `json:"data"`
	Scale *int           `json:"scale"`
}

func newRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("binds valid body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"type":"tel","data":{"number":15551234567},"scale":3}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)

		assert.Equal(t, "tel", req.Type)
		require.NotNil(t, req.Scale)
		assert.Equal(t, 3, *req.Scale)
		assert.Equal(t, json.Number("15551234567"), req.Data["number"], "numbers keep every digit")
	})

	t.Run("absent pointer stays nil", func(t *testing.T) {
		t.Parallel()
		var req request
		require.NoError(t, binder.JSON()(newRequest(`{"type":"text"}`, "application/json"), &req))
		assert.Nil(t, req.Scale)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{}`, ""), &req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{}`, "text/plain"), &req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"type":"text","size":1}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"type":`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(``, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "empty body")
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest(`{"type":"text"}{"type":"url"}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var req request
		body := `{"type":"` + strings.Repeat("a", 64) + `"}`
		err := binder.JSONWithLimit(32)(newRequest(body, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrRequestTooLarge)
	})
}
