package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrgen/handler"
	"github.com/dmitrymomot/qrgen/modules/qr"
	"github.com/dmitrymomot/qrgen/pkg/config"
	"github.com/dmitrymomot/qrgen/pkg/httpserver"
	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/ratelimiter"
	"github.com/dmitrymomot/qrgen/pkg/redis"
	"github.com/dmitrymomot/qrgen/pkg/requestid"
	"github.com/dmitrymomot/qrgen/svc/generator"
)

const healthPath = "/api/health"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (API, page and assets)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load[Config]()
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func newLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

func serve(ctx context.Context, cfg Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	var (
		cache  generator.Cache
		store  ratelimiter.Store
		checks = map[string]qr.HealthCheck{}
	)

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", logger.Component("redis"), logger.Error(err))
			return err
		}
		defer client.Close()

		cache = generator.NewRedisCache(redis.NewStorage(client, "qr:"), cfg.CacheTTL)
		store = ratelimiter.NewRedisStore(client)
		checks["redis"] = redis.Healthcheck(client)
	} else {
		if cfg.CacheSize > 0 {
			cache = generator.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL)
		}
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		store = mem
	}

	svc := generator.New(generator.WithCache(cache), generator.WithLogger(log))

	var limit func(http.Handler) http.Handler
	if cfg.RateLimitEnabled {
		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		limit = ratelimiter.Middleware(bucket, ratelimiter.MiddlewareConfig{
			OnLimited: func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
				resp := handler.JSONError(handler.ErrTooManyRequests.WithMessage("rate limit exceeded, retry later"))
				_ = resp.Render(w, r)
			},
			OnError: func(w http.ResponseWriter, r *http.Request, err error) bool {
				// A broken limiter must not take the API down with it
				log.WarnContext(r.Context(), "rate limiter unavailable", logger.Component("ratelimiter"), logger.Error(err))
				return true
			},
		})
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		requestid.Middleware,
		logger.Middleware(log, logger.MiddlewareConfig{
			Skip: func(r *http.Request) bool { return r.URL.Path == healthPath },
		}),
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
			ExposedHeaders: []string{
				"Content-Disposition", "X-QR-Cache", requestid.Header,
				"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset",
			},
			MaxAge: 300,
		}),
	)
	r.Mount("/", qr.Router(qr.RouterOptions{
		Service:      svc,
		ErrorHandler: handler.NewErrorHandler(log),
		Logger:       log,
		RateLimit:    limit,
		Checks:       checks,
		Title:        "QR Code Generator",
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	log.Info("application stopped")
	return nil
}
