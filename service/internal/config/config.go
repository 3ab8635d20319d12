// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// EnvPrefix is prepended to every variable name read by Load.
const EnvPrefix = "GOFOUR_"

// Config holds the runtime settings of the analysis service.
type Config struct {
	HTTPAddr       string        // Listen address for the HTTP server.
	LogLevel       logrus.Level  // Minimum level emitted by the logger.
	LogFormat      string        // "text" or "json".
	RedisURL       string        // Empty disables the action cache.
	CacheTTL       time.Duration // Lifetime of cached action lists.
	DatabaseURL    string        // Empty disables the analysis journal.
	JWTSecret      string        // Empty disables bearer authentication.
	MaxHandSize    int           // Largest hand accepted for analysis.
	AllowedOrigins []string      // Browser origins allowed by CORS and the websocket endpoint.
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		HTTPAddr:    ":8080",
		LogLevel:    logrus.InfoLevel,
		LogFormat:   "text",
		CacheTTL:    10 * time.Minute,
		MaxHandSize: 16,
	}
}

// Load reads the optional .env files, then the environment.
// A missing .env file is not an error; malformed values are.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sLOG_LEVEL: %w", EnvPrefix, err)
		}
		cfg.LogLevel = lvl
	}
	if v, ok := get("LOG_FORMAT"); ok {
		v = strings.ToLower(v)
		if v != "text" && v != "json" {
			return Config{}, fmt.Errorf("%sLOG_FORMAT: unsupported format %q", EnvPrefix, v)
		}
		cfg.LogFormat = v
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := get("CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("%sCACHE_TTL: invalid duration %q", EnvPrefix, v)
		}
		cfg.CacheTTL = ttl
	}
	if v, ok := get("DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := get("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get("MAX_HAND_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 16 {
			return Config{}, fmt.Errorf("%sMAX_HAND_SIZE: invalid size %q", EnvPrefix, v)
		}
		cfg.MaxHandSize = n
	}
	if v, ok := get("ALLOWED_ORIGINS"); ok {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg, nil
}
