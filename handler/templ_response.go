package handler

import (
	"net/http"

	"github.com/a-h/templ"
)

// templResponse wraps a templ component to implement Response
type templResponse struct {
	component templ.Component
	status    int
}

// TemplOption configures a templ response.
type TemplOption func(*templResponse)

// WithTemplStatus sets custom HTTP status code.
func WithTemplStatus(status int) TemplOption {
	return func(t *templResponse) { t.status = status }
}

// Render writes the component as an HTML document.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	return t.component.Render(r.Context(), w)
}

// Templ creates a response from a templ component.
//
//	return handler.Templ(views.Index(params))
func Templ(component templ.Component, opts ...TemplOption) Response {
	t := &templResponse{component: component, status: http.StatusOK}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
