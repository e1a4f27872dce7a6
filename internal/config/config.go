// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/fraudlens/fraudlens/internal/simulator"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port      string
	Env       string // "development", "staging", "production"
	LogLevel  string
	LogFormat string // "text" or "json"

	// Simulation
	Seed             int64 // 0 seeds from the clock
	Intervals        simulator.Intervals
	AlertProbability float64

	// Security
	RateLimitRPM int

	// Tracing (optional, disabled when empty)
	OTLPEndpoint string
}

const (
	DefaultPort      = "8080"
	DefaultEnv       = "development"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultRateLimit = 120
)

// Load reads configuration from environment variables
// It loads .env file if present (for local development)
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	defaults := simulator.DefaultIntervals()

	cfg := &Config{
		Port:      getEnv("PORT", DefaultPort),
		Env:       getEnv("ENV", DefaultEnv),
		LogLevel:  getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat: getEnv("LOG_FORMAT", DefaultLogFormat),
		Seed:      getEnvInt64("SIM_SEED", 0),
		Intervals: simulator.Intervals{
			Transactions: getEnvDuration("TX_INTERVAL", defaults.Transactions),
			Alerts:       getEnvDuration("ALERT_INTERVAL", defaults.Alerts),
			Risk:         getEnvDuration("RISK_INTERVAL", defaults.Risk),
			Models:       getEnvDuration("MODEL_INTERVAL", defaults.Models),
			Chains:       getEnvDuration("CHAIN_INTERVAL", defaults.Chains),
			Overview:     getEnvDuration("OVERVIEW_INTERVAL", defaults.Overview),
		},
		AlertProbability: getEnvFloat("ALERT_PROBABILITY", simulator.DefaultAlertProbability),
		RateLimitRPM:     int(getEnvInt64("RATE_LIMIT_RPM", DefaultRateLimit)),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}

	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"TX_INTERVAL", c.Intervals.Transactions},
		{"ALERT_INTERVAL", c.Intervals.Alerts},
		{"RISK_INTERVAL", c.Intervals.Risk},
		{"MODEL_INTERVAL", c.Intervals.Models},
		{"CHAIN_INTERVAL", c.Intervals.Chains},
		{"OVERVIEW_INTERVAL", c.Intervals.Overview},
	}
	for _, iv := range intervals {
		if iv.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", iv.name, iv.d)
		}
	}

	if c.AlertProbability <= 0 || c.AlertProbability > 1 {
		return fmt.Errorf("ALERT_PROBABILITY must be in (0, 1], got %g", c.AlertProbability)
	}

	if c.RateLimitRPM < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must not be negative")
	}

	return nil
}

// Simulator returns the dashboard configuration derived from c.
func (c *Config) Simulator() simulator.Config {
	return simulator.Config{
		Seed:             c.Seed,
		Intervals:        c.Intervals,
		AlertProbability: c.AlertProbability,
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("4s", "1m") or bare seconds ("4").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
