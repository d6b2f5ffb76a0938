// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the runtime configuration of the API server.
type Config struct {
	Addr              string
	AllowedOrigins    []string
	RateLimitRPS      float64
	RateLimitBurst    int
	RedisAddr         string
	CacheTTL          time.Duration
	TelemetryExporter string
	ShutdownTimeout   time.Duration
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Addr:              ":8080",
		AllowedOrigins:    []string{"http://localhost:5173", "http://localhost:3000"},
		RateLimitRPS:      5,
		RateLimitBurst:    10,
		CacheTTL:          10 * time.Minute,
		TelemetryExporter: "otlp",
		ShutdownTimeout:   5 * time.Second,
	}
}

// Load overlays environment variables on Default.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		cfg.Addr = v
	}

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}

	if v, ok := lookup("RATE_LIMIT_RPS"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = f
	}

	if v, ok := lookup("RATE_LIMIT_BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = n
	}

	if v, ok := lookup("REDIS_ADDR"); ok {
		cfg.RedisAddr = strings.TrimSpace(v)
	}

	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	if v, ok := lookup("TELEMETRY_EXPORTER"); ok && v != "" {
		cfg.TelemetryExporter = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	switch cfg.TelemetryExporter {
	case "otlp", "stdout", "none":
	default:
		return Config{}, fmt.Errorf("TELEMETRY_EXPORTER must be otlp, stdout or none, got %q", cfg.TelemetryExporter)
	}

	return cfg, nil
}

// RateLimitEnabled reports whether requests should be throttled.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
