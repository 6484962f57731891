package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv loads variables from the given .env files into the process
// environment. Variables already set win over file values. Without arguments
// the default .env in the working directory is loaded if it exists.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		defaultEnvLoaded.Do(func() {
			// The default file is optional
			_ = godotenv.Load()
		})
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses the process environment into a new T using `env` struct tags.
// The default .env file is read once beforehand.
//
// Example:
//
//	type Config struct {
//		Addr      string        `env:"HTTP_ADDR" envDefault:":8080"`
//		CacheTTL  time.Duration `env:"QR_CACHE_TTL" envDefault:"1h"`
//		RedisURL  string        `env:"REDIS_URL"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any]() (T, error) {
	_ = LoadEnv()
	return parse[T](env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom[T any](environ map[string]string) (T, error) {
	return parse[T](env.Options{Environment: environ})
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func parse[T any](opts env.Options) (T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
