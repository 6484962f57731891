package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/config"
)

type sample struct {
	Name    string        `env:"NAME" envDefault:"qrgen"`
	Size    int           `env:"SIZE" envDefault:"1024"`
	TTL     time.Duration `env:"TTL" envDefault:"1h"`
	Origins []string      `env:"ORIGINS" envSeparator:"," envDefault:"*"`
}

type required struct {
	URL string `env:"URL,required"`
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFrom[sample](map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "qrgen", cfg.Name)
		assert.Equal(t, 1024, cfg.Size)
		assert.Equal(t, time.Hour, cfg.TTL)
		assert.Equal(t, []string{"*"}, cfg.Origins)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFrom[sample](map[string]string{
			"NAME":    "x",
			"TTL":     "5m",
			"ORIGINS": "https://a.example,https://b.example",
		})
		require.NoError(t, err)
		assert.Equal(t, "x", cfg.Name)
		assert.Equal(t, 5*time.Minute, cfg.TTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFrom[sample](map[string]string{"SIZE": "big"})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFrom[required](map[string]string{})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

type fileConfig struct {
	Name   string `env:"LOADER_TEST_NAME"`
	Size   int    `env:"LOADER_TEST_SIZE"`
	Preset string `env:"LOADER_TEST_PRESET"`
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LOADER_TEST_PRESET", "process_value")
	// t.Setenv restores the previous value only for variables it set itself
	t.Cleanup(func() {
		os.Unsetenv("LOADER_TEST_NAME")
		os.Unsetenv("LOADER_TEST_SIZE")
	})

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	cfg, err := config.Load[fileConfig]()
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 42, cfg.Size)
	assert.Equal(t, "process_value", cfg.Preset, "process environment wins over file")

	err = config.LoadEnv("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
