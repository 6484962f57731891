package qr

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/qrgen/handler"
	"github.com/dmitrymomot/qrgen/pkg/binder"
	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/svc/generator"
)

//go:embed assets
var assets embed.FS

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// RouterOptions configures the QR module. Service is required.
type RouterOptions struct {
	Service      *generator.Service
	ErrorHandler handler.ErrorHandler[handler.Context]
	Logger       *slog.Logger

	// RateLimit wraps POST /api/qr when set.
	RateLimit func(http.Handler) http.Handler

	// Checks are run by GET /api/health, keyed by dependency name.
	Checks map[string]HealthCheck

	// Title is shown on the index page.
	Title string
}

type module struct {
	svc    *generator.Service
	log    *slog.Logger
	checks map[string]HealthCheck
	title  string
}

// Router creates the QR module router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/", qr.Router(qr.RouterOptions{
//		Service:      generator.New(generator.WithCache(cache)),
//		ErrorHandler: handler.NewErrorHandler(log),
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("qr.Router: Service is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = handler.NewErrorHandler(opts.Logger)
	}
	if opts.Title == "" {
		opts.Title = "QR Code Generator"
	}

	m := &module{
		svc:    opts.Service,
		log:    opts.Logger.With(logger.Component("qr")),
		checks: opts.Checks,
		title:  opts.Title,
	}

	r := chi.NewRouter()
	r.Get("/", handler.Wrap(m.index,
		handler.WithErrorHandler[handler.Context, struct{}](opts.ErrorHandler),
	))

	static, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(static)))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handler.Wrap(m.health,
			handler.WithErrorHandler[handler.Context, struct{}](opts.ErrorHandler),
		))

		api.Group(func(gen chi.Router) {
			if opts.RateLimit != nil {
				gen.Use(opts.RateLimit)
			}
			gen.Post("/qr", handler.Wrap(m.generate,
				handler.WithBinders[handler.Context, generator.Request](binder.JSON()),
				handler.WithErrorHandler[handler.Context, generator.Request](opts.ErrorHandler),
			))
		})

		// Formatting only, so it stays outside the limiter. The page calls it
		// after every generation.
		api.Post("/qr/payload", handler.Wrap(m.payload,
			handler.WithBinders[handler.Context, generator.Request](binder.JSON()),
			handler.WithErrorHandler[handler.Context, generator.Request](opts.ErrorHandler),
		))
	})

	return r
}

func (m *module) generate(ctx handler.Context, req generator.Request) handler.Response {
	img, err := m.svc.Generate(ctx, req)
	if err != nil {
		return handler.JSONError(httpError(err))
	}

	cacheStatus := "miss"
	if img.Cached {
		cacheStatus = "hit"
	}
	return handler.Blob(img.Body, img.ContentType,
		handler.WithInline(img.Filename),
		handler.WithHeader("X-QR-Cache", cacheStatus),
		handler.WithHeader("Cache-Control", "no-store"),
	)
}

// PayloadResponse is returned by POST /api/qr/payload.
type PayloadResponse struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

func (m *module) payload(ctx handler.Context, req generator.Request) handler.Response {
	text, err := m.svc.Payload(req)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(PayloadResponse{Type: req.Type, Payload: text})
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (m *module) health(ctx handler.Context, _ struct{}) handler.Response {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	if len(m.checks) > 0 {
		resp.Checks = make(map[string]string, len(m.checks))
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		for name, check := range m.checks {
			if err := check(checkCtx); err != nil {
				m.log.WarnContext(ctx, "readiness check failed", slog.String("check", name), logger.Error(err))
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	return handler.JSON(resp, handler.WithJSONStatus(status))
}

func (m *module) index(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(Page(PageParams{
		Title:   m.title,
		Preview: m.preview(ctx),
	}))
}

// preview renders the sample shown before the user submits the form.
// A failure only costs the preview, the page still works.
func (m *module) preview(ctx context.Context) string {
	uri, err := m.svc.DataURI(ctx, generator.Request{
		Type:   "url",
		Data:   map[string]any{"url": "https://example.com"},
		Format: "svg",
	})
	if err != nil {
		m.log.WarnContext(ctx, "preview render failed", logger.Error(err))
		return ""
	}
	return uri
}
