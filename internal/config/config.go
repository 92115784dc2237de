package config

import (
	"os"
	"strconv"

	"segscore/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Metrics  MetricsConfig
}

// DatabaseConfig holds result store connection settings. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// MetricsConfig holds metric evaluation defaults
type MetricsConfig struct {
	// MaxSpan is the default maximum transposition span.
	MaxSpan int
	// Workers bounds concurrent pairwise comparisons; zero means one
	// per CPU.
	Workers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Metrics: MetricsConfig{
			MaxSpan: getEnvIntOrDefault("SEGSCORE_NT", 2),
			Workers: getEnvIntOrDefault("SEGSCORE_WORKERS", 0),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Metrics.MaxSpan < 0 {
		return errors.ConfigInvalid("SEGSCORE_NT must not be negative")
	}
	if config.Metrics.Workers < 0 {
		return errors.ConfigInvalid("SEGSCORE_WORKERS must not be negative")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
