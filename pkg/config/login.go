package config

import (
	"fmt"
	"time"

	"github.com/clockit/clockit-idm/pkg/lockout"
)

// LoginConfig contains lockout and password reset settings.
// Durations accept ISO 8601 ("PT30S") and Go ("30s") formats.
type LoginConfig struct {
	MaxFailedAttempts int    `env:"LOGIN_MAX_FAILED_ATTEMPTS" env-default:"3"`
	LockoutDuration   string `env:"LOGIN_LOCKOUT_DURATION" env-default:"PT30S"`
	ResetTokenExpiry  string `env:"RESET_TOKEN_EXPIRY" env-default:"PT30M"`
	BcryptCost        int    `env:"BCRYPT_COST" env-default:"12"`
	FrontendOrigin    string `env:"FRONTEND_ORIGIN" env-default:"http://localhost:3000"`
}

// DefaultLoginConfig returns the settings used when nothing is configured.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   "PT30S",
		ResetTokenExpiry:  "PT30M",
		BcryptCost:        12,
		FrontendOrigin:    "http://localhost:3000",
	}
}

// ParseLockoutDuration parses the LockoutDuration field as a time.Duration.
func (c LoginConfig) ParseLockoutDuration() (time.Duration, error) {
	return ParseDuration(c.LockoutDuration)
}

// ParseResetTokenExpiry parses the ResetTokenExpiry field as a time.Duration.
func (c LoginConfig) ParseResetTokenExpiry() (time.Duration, error) {
	return ParseDuration(c.ResetTokenExpiry)
}

// ToLockoutPolicy builds the lockout policy from the configured threshold and duration.
func (c LoginConfig) ToLockoutPolicy() (lockout.Policy, error) {
	d, err := c.ParseLockoutDuration()
	if err != nil {
		return lockout.Policy{}, fmt.Errorf("invalid lockout duration %q: %w", c.LockoutDuration, err)
	}
	return lockout.Policy{Threshold: c.MaxFailedAttempts, Duration: d}, nil
}
