package config

import (
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
)

// Config is the full service configuration read from the environment.
type Config struct {
	AppConfig                app.AppConfig
	DatabaseConfig           DatabaseConfig
	JWTConfig                JWTConfig
	EmailConfig              EmailConfig
	LoginConfig              LoginConfig
	PasswordComplexityConfig PasswordComplexityConfig
	MetricsEnabled           bool `env:"METRICS_ENABLED" env-default:"true"`
}

// LoadEnvFile loads variables from envFile into the process environment.
// A missing file is not an error.
func LoadEnvFile(envFile string) {
	if envFile == "" {
		return
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Debug("No .env file found (using environment variables or defaults)", "path", envFile)
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)
	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the settings the auth flows cannot run without.
func (c Config) Validate() error {
	errs := CollectErrors(
		RequireMinLength("JWT_SECRET", c.JWTConfig.Secret, 16),
		RequireDuration("JWT_TOKEN_EXPIRY", c.JWTConfig.TokenExpiry),
		RequirePositive("LOGIN_MAX_FAILED_ATTEMPTS", c.LoginConfig.MaxFailedAttempts),
		RequireDuration("LOGIN_LOCKOUT_DURATION", c.LoginConfig.LockoutDuration),
		RequireDuration("RESET_TOKEN_EXPIRY", c.LoginConfig.ResetTokenExpiry),
		RequireNonEmpty("FRONTEND_ORIGIN", c.LoginConfig.FrontendOrigin),
		RequireNonEmpty("DB_HOST", c.DatabaseConfig.Host),
	)
	if len(errs) > 0 {
		return errs
	}
	return nil
}
