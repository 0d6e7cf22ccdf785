package config

import (
	"os"
	"strconv"

	"powerplan/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Design DesignConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DesignConfig holds design-engine defaults and the sweep grid.
// The grid defaults to the canonical 5..95 step 5 percent walk; overriding it
// changes sweep resolution, not formula behavior.
type DesignConfig struct {
	DefaultAlpha float64
	DefaultPower float64
	GridStartPct float64
	GridEndPct   float64
	GridStepPct  float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Design: DesignConfig{
			DefaultAlpha: getEnvFloatOrDefault("DEFAULT_ALPHA", 0.05),
			DefaultPower: getEnvFloatOrDefault("DEFAULT_POWER", 0.8),
			GridStartPct: getEnvFloatOrDefault("GRID_START_PCT", 5),
			GridEndPct:   getEnvFloatOrDefault("GRID_END_PCT", 95),
			GridStepPct:  getEnvFloatOrDefault("GRID_STEP_PCT", 5),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	d := config.Design
	if d.DefaultAlpha <= 0 || d.DefaultAlpha >= 1 {
		return errors.ConfigInvalid("DEFAULT_ALPHA must be in (0,1)")
	}
	if d.DefaultPower <= 0 || d.DefaultPower >= 1 {
		return errors.ConfigInvalid("DEFAULT_POWER must be in (0,1)")
	}
	if d.GridStepPct <= 0 {
		return errors.ConfigInvalid("GRID_STEP_PCT must be positive")
	}
	if d.GridStartPct <= 0 || d.GridEndPct >= 100 || d.GridEndPct < d.GridStartPct {
		return errors.ConfigInvalid("grid bounds must satisfy 0 < start <= end < 100")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
