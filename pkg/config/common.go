package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sosodev/duration"
)

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt retrieves an environment variable as an integer.
// Returns the default value if not set or invalid.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Environment represents different deployment environments
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// GetEnvironment returns the current environment from APP_ENV or defaults to development
func GetEnvironment() Environment {
	switch GetEnvOrDefault("APP_ENV", "development") {
	case "production", "prod":
		return Production
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

// IsProduction returns true if running in production environment
func IsProduction() bool {
	return GetEnvironment() == Production
}

// ParseDuration accepts ISO 8601 durations ("PT30S", "P15D") and falls back to
// Go duration strings ("30s", "360h").
func ParseDuration(s string) (time.Duration, error) {
	isoDuration, err := duration.Parse(s)
	if err == nil {
		return isoDuration.ToTimeDuration(), nil
	}
	return time.ParseDuration(s)
}
