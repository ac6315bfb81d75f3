package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.LoginConfig.MaxFailedAttempts)
	assert.Equal(t, "http://localhost:3000", cfg.LoginConfig.FrontendOrigin)
	assert.Equal(t, 12, cfg.LoginConfig.BcryptCost)
	assert.Equal(t, "", cfg.EmailConfig.Host)

	policy, err := cfg.LoginConfig.ToLockoutPolicy()
	require.NoError(t, err)
	assert.Equal(t, 3, policy.Threshold)
	assert.Equal(t, 30*time.Second, policy.Duration)

	ttl, err := cfg.JWTConfig.ParseTokenExpiry()
	require.NoError(t, err)
	assert.Equal(t, 15*24*time.Hour, ttl)

	expiry, err := cfg.LoginConfig.ParseResetTokenExpiry()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, expiry)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("LOGIN_LOCKOUT_DURATION", "soon")
	t.Setenv("LOGIN_MAX_FAILED_ATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"JWT_SECRET", "LOGIN_LOCKOUT_DURATION", "LOGIN_MAX_FAILED_ATTEMPTS"}, fields)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"PT30S", 30 * time.Second},
		{"PT30M", 30 * time.Minute},
		{"P15D", 15 * 24 * time.Hour},
		{"90s", 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDuration("later")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLOCKIT_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CLOCKIT_TEST_VALUE") })

	LoadEnvFile(path)
	assert.Equal(t, "from-file", os.Getenv("CLOCKIT_TEST_VALUE"))

	// missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestEmailConfig_ToSMTPConfig(t *testing.T) {
	smtp := EmailConfig{Host: "smtp.example.com", Port: 465, Username: "bot@example.com"}.ToSMTPConfig()

	assert.Equal(t, "bot@example.com", smtp.From)
	assert.True(t, smtp.SSL)
	assert.Equal(t, 465, smtp.Port)
}

func TestPasswordComplexityConfig_NilUsesDefault(t *testing.T) {
	var c *PasswordComplexityConfig
	assert.Equal(t, 8, c.ToPasswordPolicy().MinLength)
}
