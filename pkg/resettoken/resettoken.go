// Package resettoken generates one-time password reset secrets.
//
// The raw token is sent to the user and never stored. Only its SHA-256
// digest is persisted, and verification compares digests in constant time.
package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

const (
	// TokenBytes is the entropy of a raw token, 64 hex characters.
	TokenBytes    = 32
	DefaultExpiry = 30 * time.Minute
)

// Generate returns a hex-encoded random token and its digest.
func Generate() (token string, digest []byte, err error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom reads the token bytes from r.
func GenerateFrom(r io.Reader) (token string, digest []byte, err error) {
	buf := make([]byte, TokenBytes)
	if _, err = io.ReadFull(r, buf); err != nil {
		return "", nil, fmt.Errorf("generate reset token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, Digest(token), nil
}

// Digest is the SHA-256 of the raw token string.
func Digest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// Matches compares the digest of token with stored in constant time.
func Matches(token string, stored []byte) bool {
	if token == "" || len(stored) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(Digest(token), stored) == 1
}

// Valid reports whether token matches stored and expiry has not passed.
// The digest is always compared so the check takes the same time for
// expired and live tokens.
func Valid(token string, stored []byte, expiry *time.Time, now time.Time) bool {
	match := Matches(token, stored)
	if expiry == nil || !now.Before(*expiry) {
		return false
	}
	return match
}
