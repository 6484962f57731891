package main

import (
	"time"

	"github.com/dmitrymomot/qrgen/pkg/httpserver"
	"github.com/dmitrymomot/qrgen/pkg/ratelimiter"
	"github.com/dmitrymomot/qrgen/pkg/redis"
)

// Config is the service configuration read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"qrgen"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// CacheSize is the in-memory render cache capacity. 0 disables caching
	// unless redis is configured.
	CacheSize int           `env:"QR_CACHE_SIZE" envDefault:"512"`
	CacheTTL  time.Duration `env:"QR_CACHE_TTL" envDefault:"1h"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}
