package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetMessage(t *testing.T) {
	url := "http://localhost:3000/reset-password?token=abc123&email=a%40x.com"
	msg, err := PasswordResetMessage("a@x.com", PasswordResetData{
		FirstName:     "Jane",
		ResetURL:      url,
		ExpiryMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, PasswordResetSubject, msg.Subject)
	assert.Contains(t, msg.Text, url)
	assert.Contains(t, msg.Text, "30 minutes")
	assert.Contains(t, msg.HTML, "Hi Jane,")
	assert.Contains(t, msg.HTML, "token=abc123")
}

func TestPasswordResetMessageEscapesName(t *testing.T) {
	msg, err := PasswordResetMessage("a@x.com", PasswordResetData{FirstName: "<script>x</script>", ResetURL: "http://x"})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestMockMailer(t *testing.T) {
	m := &MockMailer{}
	_, ok := m.Last()
	assert.False(t, ok)

	require.NoError(t, m.Send(context.Background(), Message{To: "a@x.com", Subject: "hi"}))
	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, "hi", last.Subject)

	m.Err = errors.New("smtp down")
	assert.Error(t, m.Send(context.Background(), Message{To: "a@x.com"}))
	assert.Len(t, m.Sent, 1)
}

func TestSMTPMailerRequiresRecipient(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com", FromName: "Clock It"})
	require.NoError(t, err)
	assert.Error(t, m.Send(context.Background(), Message{Subject: "x", Text: "y"}))
}
