package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// SSL dials with implicit TLS (port 465). TLS requires STARTTLS.
	SSL bool
	TLS bool
}

// SMTPMailer sends messages through an SMTP relay with go-mail
type SMTPMailer struct {
	config SMTPConfig
	client *mail.Client
}

func NewSMTPMailer(config SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(30 * time.Second),
	}

	if config.Username != "" && config.Password != "" {
		slog.Info("Adding authentication", "user", config.Username)
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}

	switch {
	case config.SSL:
		slog.Info("Using implicit TLS")
		opts = append(opts,
			mail.WithSSL(),
			mail.WithTLSConfig(&tls.Config{ServerName: config.Host}),
		)
	case config.TLS:
		slog.Info("Using TLS Mandatory policy")
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{ServerName: config.Host}),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
	default:
		slog.Info("Using opportunistic TLS policy")
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		slog.Error("Failed to create mail client", "err", err)
		return nil, err
	}
	return &SMTPMailer{config: config, client: client}, nil
}

// Send builds a multipart message when both bodies are set.
func (m *SMTPMailer) Send(ctx context.Context, message Message) error {
	if message.To == "" {
		return fmt.Errorf("email requires a 'To' address")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.config.FromName, m.config.From); err != nil {
		slog.Error("Failed to set from address", "err", err)
		return err
	}
	if err := msg.To(message.To); err != nil {
		slog.Error("Failed to set to address", "err", err)
		return err
	}
	msg.Subject(message.Subject)

	switch {
	case message.Text != "" && message.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, message.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, message.HTML)
	case message.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, message.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, message.Text)
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		slog.Error("Failed to send email", "err", err, "host", m.config.Host, "port", m.config.Port)
		return err
	}

	slog.Info("Email sent successfully", "to", message.To, "host", m.config.Host, "port", m.config.Port)
	return nil
}
