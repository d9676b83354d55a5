package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudforge/tenantcore/pkg/config"
)

type cacheConfig struct {
	ExpireMinutes int           `env:"TEST_CACHE_EXPIRE_MINUTES" envDefault:"30"`
	Timeout       time.Duration `env:"TEST_CACHE_TIMEOUT" envDefault:"10s"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg cacheConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 30, cfg.ExpireMinutes)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("caches per type", func(t *testing.T) {
		// The first Load above cached the defaults; a changed environment
		// must not leak into later loads of the same type.
		t.Setenv("TEST_CACHE_EXPIRE_MINUTES", "5")

		var cfg cacheConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 30, cfg.ExpireMinutes)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil target fails", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[cacheConfig](nil), config.ErrNilPointer)
	})
}
