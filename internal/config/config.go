package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"hypotest/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Engine EngineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EngineConfig holds test-engine defaults applied at the API boundary
type EngineConfig struct {
	DefaultAlpha  float64 // Used when a request omits alpha
	MaxBatchSize  int     // Upper bound on batch request count
	MaxConcurrent int64   // Batch runner parallelism
}

// Load reads configuration from the environment, loading a .env file first
// if one is present, and validates it.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Engine: EngineConfig{
			DefaultAlpha:  getEnvFloatOrDefault("DEFAULT_ALPHA", 0.05),
			MaxBatchSize:  getEnvIntOrDefault("MAX_BATCH_SIZE", 500),
			MaxConcurrent: int64(getEnvIntOrDefault("MAX_CONCURRENT_TESTS", 8)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !(c.Engine.DefaultAlpha > 0 && c.Engine.DefaultAlpha < 1) {
		return core.NewInvalidParameterError("DEFAULT_ALPHA", "must be in (0,1)")
	}
	if c.Engine.MaxBatchSize < 1 {
		return core.NewInvalidParameterError("MAX_BATCH_SIZE", "must be >= 1")
	}
	if c.Engine.MaxConcurrent < 1 {
		return core.NewInvalidParameterError("MAX_CONCURRENT_TESTS", "must be >= 1")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
