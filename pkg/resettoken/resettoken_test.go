package resettoken

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	token, digest, err := Generate()
	require.NoError(t, err)
	assert.Len(t, token, 2*TokenBytes)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
	assert.Len(t, digest, 32)
	assert.Equal(t, Digest(token), digest)

	other, _, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateFromDeterministicSource(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xab}, TokenBytes))
	token, _, err := GenerateFrom(src)
	require.NoError(t, err)
	assert.Equal(t, string(bytes.Repeat([]byte("ab"), TokenBytes)), token)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateFromFailingSource(t *testing.T) {
	_, _, err := GenerateFrom(failingReader{})
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	token, digest, err := Generate()
	require.NoError(t, err)
	expiry := now.Add(DefaultExpiry)

	assert.True(t, Valid(token, digest, &expiry, now))
	assert.True(t, Valid(token, digest, &expiry, expiry.Add(-time.Nanosecond)))
	assert.False(t, Valid(token, digest, &expiry, expiry), "expires at the boundary")
	assert.False(t, Valid(token, digest, nil, now), "no pending token")
	assert.False(t, Valid(token, nil, &expiry, now))
	assert.False(t, Valid("", digest, &expiry, now))
	assert.False(t, Valid(flipLast(token), digest, &expiry, now))
}

func flipLast(s string) string {
	last := byte('0')
	if s[len(s)-1] == '0' {
		last = '1'
	}
	return s[:len(s)-1] + string(last)
}
