// Package mailer sends transactional email.
package mailer

import (
	"context"
	"log/slog"
	"sync"
)

// Message is one outgoing email. Either body may be empty.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a message or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "Email not sent, no SMTP host configured", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

// MockMailer records messages and returns Err from every Send.
type MockMailer struct {
	mu   sync.Mutex
	Sent []Message
	Err  error
}

func (m *MockMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Last returns the most recent message and whether there was one.
func (m *MockMailer) Last() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
