package config

import (
	"os"
	"strconv"

	"framelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds report-store settings. An empty URL selects the
// in-memory store.
type DatabaseConfig struct {
	URL string
}

// AnalysisConfig holds statistical engine settings
type AnalysisConfig struct {
	BootstrapIterations int
	ConfidenceLevel     float64

	// Seed makes bootstrap intervals reproducible when non-zero; zero keeps
	// the default time-seeded RNG.
	Seed int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Analysis: AnalysisConfig{
			BootstrapIterations: getEnvIntOrDefault("BOOTSTRAP_ITERATIONS", 1000),
			ConfidenceLevel:     getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
			Seed:                getEnvInt64OrDefault("ANALYSIS_SEED", 0),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.BootstrapIterations < 1 {
		return errors.ConfigInvalid("BOOTSTRAP_ITERATIONS must be at least 1")
	}
	if config.Analysis.ConfidenceLevel <= 0 || config.Analysis.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be in (0, 1)")
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
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
