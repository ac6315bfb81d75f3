package config

import (
	"time"
)

// JWTConfig holds bearer token configuration
type JWTConfig struct {
	Secret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	TokenExpiry string `env:"JWT_TOKEN_EXPIRY" env-default:"P15D"`
	Issuer      string `env:"JWT_ISSUER" env-default:"clockit"`
}

// ParseTokenExpiry parses the bearer token lifetime
func (j JWTConfig) ParseTokenExpiry() (time.Duration, error) {
	return ParseDuration(j.TokenExpiry)
}
