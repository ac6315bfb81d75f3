package tokengenerator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleClaims() Claims {
	return Claims{
		AccountID:  "3c2f4c7e-2a47-4a8a-9a7e-0b1e9f1a2b3c",
		EmployeeID: "b6f1f0a4-7b0c-4a6e-8c0e-7b2f8a7d6e5f",
		Email:      "a@x.com",
		IsAdmin:    true,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	g := NewJwtTokenGenerator("test-secret-value", "clockit").WithClock(fixedClock(issuedAt))

	token, expiresAt, err := g.Issue(sampleClaims(), DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(15*24*time.Hour), expiresAt)

	claims, err := g.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "3c2f4c7e-2a47-4a8a-9a7e-0b1e9f1a2b3c", claims.AccountID)
	assert.Equal(t, "3c2f4c7e-2a47-4a8a-9a7e-0b1e9f1a2b3c", claims.Subject)
	assert.Equal(t, "b6f1f0a4-7b0c-4a6e-8c0e-7b2f8a7d6e5f", claims.EmployeeID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "clockit", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejects(t *testing.T) {
	issuedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	g := NewJwtTokenGenerator("test-secret-value", "clockit").WithClock(fixedClock(issuedAt))
	token, _, err := g.Issue(sampleClaims(), time.Hour)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewJwtTokenGenerator("test-secret-value", "clockit").WithClock(fixedClock(issuedAt.Add(2 * time.Hour)))
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJwtTokenGenerator("another-secret", "clockit").WithClock(fixedClock(issuedAt))
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := g.Verify(token + "x")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := g.Verify("")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		c := sampleClaims()
		c.RegisteredClaims = jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = g.Verify(unsigned)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sampleClaims()).SignedString([]byte("test-secret-value"))
		require.NoError(t, err)

		_, err = g.Verify(noExp)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
