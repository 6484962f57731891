// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tag parsing:
//
//	cfg, err := config.Load[app.Config]()
//
// LoadFrom parses an explicit map instead of the process environment, which
// keeps tests independent of global state. Failures wrap ErrParsingConfig
// or ErrLoadingEnvFile.
package config
