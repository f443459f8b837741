package config

import (
	"os"
	"strconv"

	"gwinfer/internal/errors"
)

// Config represents the complete run configuration
type Config struct {
	Run      RunConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// RunConfig holds sampling run settings
type RunConfig struct {
	EventID string
	Seed    uint64
	Samples int
	Workers int
}

// OutputConfig holds result export settings
type OutputConfig struct {
	ExcelFile string
}

// DatabaseConfig holds optional persistence settings
type DatabaseConfig struct {
	URL string // empty disables the postgres sink
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Run: RunConfig{
			EventID: getEnvOrDefault("EVENT_ID", "GW150914"),
			Seed:    uint64(getEnvIntOrDefault("SEED", 42)),
			Samples: getEnvIntOrDefault("SAMPLES", 10000),
			Workers: getEnvIntOrDefault("WORKERS", 4),
		},
		Output: OutputConfig{
			ExcelFile: getEnvOrDefault("OUTPUT_XLSX", ""),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Run.Samples <= 0 {
		return errors.ConfigInvalid("SAMPLES must be > 0")
	}
	if cfg.Run.Workers <= 0 {
		return errors.ConfigInvalid("WORKERS must be > 0")
	}
	if cfg.Run.EventID == "" {
		return errors.ConfigInvalid("EVENT_ID cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
