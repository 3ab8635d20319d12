package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 16, cfg.MaxHandSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"GOFOUR_HTTP_ADDR":       "127.0.0.1:9000",
		"GOFOUR_LOG_LEVEL":       "debug",
		"GOFOUR_LOG_FORMAT":      "JSON",
		"GOFOUR_REDIS_URL":       "redis://localhost:6379/0",
		"GOFOUR_CACHE_TTL":       "90s",
		"GOFOUR_DATABASE_URL":    "postgres://localhost/gofour",
		"GOFOUR_JWT_SECRET":      "s3cret",
		"GOFOUR_MAX_HAND_SIZE":   "12",
		"GOFOUR_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "postgres://localhost/gofour", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 12, cfg.MaxHandSize)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestFromLookupInvalid(t *testing.T) {
	tests := map[string]string{
		"GOFOUR_LOG_LEVEL":     "loud",
		"GOFOUR_LOG_FORMAT":    "xml",
		"GOFOUR_CACHE_TTL":     "soon",
		"GOFOUR_MAX_HAND_SIZE": "0",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{k: v}))
			assert.ErrorContains(t, err, k)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOFOUR_MAX_HAND_SIZE=9\n"), 0o600))
	t.Setenv("GOFOUR_MAX_HAND_SIZE", "")
	os.Unsetenv("GOFOUR_MAX_HAND_SIZE")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxHandSize)

	// A missing file is fine.
	_, err = Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
