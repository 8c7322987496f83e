package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/odechar/batch"
	"github.com/katalvlaran/odechar/ode"
	"github.com/katalvlaran/odechar/poly"
)

type Config struct {
	Addr string

	// Auth; empty disables the bearer check.
	APIKey string

	// Solver defaults, overridable per request.
	Tolerance float64
	Digits    int
	Backend   string

	// Batch limits
	Workers  int
	MaxBatch int

	// Request body limit
	MaxBodyBytes int64

	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		Addr: envOr("ODECHAR_ADDR", ":8080"),

		APIKey: os.Getenv("ODECHAR_API_KEY"),

		Tolerance: envFloat("ODECHAR_TOLERANCE", ode.DefaultTolerance),
		Digits:    envInt("ODECHAR_DIGITS", ode.DefaultSignificantDigits),
		Backend:   strings.ToLower(envOr("ODECHAR_BACKEND", poly.BackendQR.String())),

		Workers:  envInt("ODECHAR_WORKERS", batch.DefaultWorkers),
		MaxBatch: envInt("ODECHAR_MAX_BATCH", 1000),

		MaxBodyBytes: envInt64("ODECHAR_MAX_BODY_BYTES", 1<<20), // 1MB

		ShutdownTimeout: envDuration("ODECHAR_SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  strings.ToLower(envOr("ODECHAR_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("ODECHAR_LOG_FORMAT", "json")),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = batch.DefaultWorkers
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 1000
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ODECHAR_ADDR is required")
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("ODECHAR_TOLERANCE must be finite and > 0, got %g", c.Tolerance)
	}
	if c.Digits < 1 || c.Digits > 17 {
		return fmt.Errorf("ODECHAR_DIGITS must be in [1, 17], got %d", c.Digits)
	}
	if _, err := poly.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("ODECHAR_BACKEND: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("ODECHAR_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("ODECHAR_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// SolverOptions turns the solver defaults into ode options. Call Validate first.
func (c Config) SolverOptions() []ode.Option {
	b, _ := poly.ParseBackend(c.Backend)
	return []ode.Option{
		ode.WithTolerance(c.Tolerance),
		ode.WithSignificantDigits(c.Digits),
		ode.WithRootFinder(ode.PolyRootFinder(poly.WithBackend(b))),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
