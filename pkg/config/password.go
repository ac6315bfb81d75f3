package config

import (
	"github.com/clockit/clockit-idm/pkg/password"
)

// PasswordComplexityConfig holds password policy configuration from environment variables
type PasswordComplexityConfig struct {
	RequiredDigit           bool `env:"PASSWORD_COMPLEXITY_REQUIRE_DIGIT" env-default:"true"`
	RequiredLowercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_LOWERCASE" env-default:"true"`
	RequiredNonAlphanumeric bool `env:"PASSWORD_COMPLEXITY_REQUIRE_NON_ALPHANUMERIC" env-default:"true"`
	RequiredUppercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_UPPERCASE" env-default:"true"`
	RequiredLength          int  `env:"PASSWORD_COMPLEXITY_REQUIRED_LENGTH" env-default:"8"`
	DisallowCommonPwds      bool `env:"PASSWORD_COMPLEXITY_DISALLOW_COMMON_PWDS" env-default:"false"`
}

// ToPasswordPolicy converts the configuration to a password.Policy
func (c *PasswordComplexityConfig) ToPasswordPolicy() *password.Policy {
	if c == nil {
		return password.DefaultPolicy()
	}
	return &password.Policy{
		MinLength:          c.RequiredLength,
		MaxLength:          password.MaxBcryptLength,
		RequireUppercase:   c.RequiredUppercase,
		RequireLowercase:   c.RequiredLowercase,
		RequireDigit:       c.RequiredDigit,
		RequireSpecialChar: c.RequiredNonAlphanumeric,
		DisallowCommonPwds: c.DisallowCommonPwds,
	}
}
