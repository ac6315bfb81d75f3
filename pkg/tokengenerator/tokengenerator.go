package tokengenerator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a bearer token issued at login.
const DefaultTTL = 15 * 24 * time.Hour

var ErrTokenInvalid = errors.New("token invalid")

// TokenGenerator issues and verifies bearer tokens
type TokenGenerator interface {
	Issue(claims Claims, ttl time.Duration) (string, time.Time, error)
	Verify(tokenStr string) (*Claims, error)
}

// Claims identify the authenticated account
type Claims struct {
	AccountID  string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JwtTokenGenerator signs tokens with HS256
type JwtTokenGenerator struct {
	Secret string
	Issuer string
	now    func() time.Time
}

// NewJwtTokenGenerator creates a new JwtTokenGenerator
func NewJwtTokenGenerator(secret, issuer string) *JwtTokenGenerator {
	return &JwtTokenGenerator{
		Secret: secret,
		Issuer: issuer,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (g *JwtTokenGenerator) WithClock(now func() time.Time) *JwtTokenGenerator {
	g.now = now
	return g
}

// Issue signs claims with an expiry ttl from now. Registered claims on the
// input are overwritten.
func (g *JwtTokenGenerator) Issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuedAt := g.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		Issuer:    g.Issuer,
		Subject:   claims.AccountID,
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(g.Secret))
	if err != nil {
		slog.Error("Failed sign JWT Claim string!", "err", err)
		return "", time.Time{}, err
	}
	return ss, claims.ExpiresAt.Time, nil
}

// Verify parses tokenStr and checks the signature, algorithm and expiry.
// Every failure wraps ErrTokenInvalid.
func (g *JwtTokenGenerator) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", ErrTokenInvalid)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(g.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		slog.Debug("Failed parse JWT string", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
