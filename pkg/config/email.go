package config

import (
	"github.com/clockit/clockit-idm/pkg/mailer"
)

// EmailConfig holds SMTP email configuration
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:""`
	Port     uint16 `env:"EMAIL_PORT" env-default:"587"`
	Username string `env:"EMAIL_USER" env-default:"noreply@example.com"`
	Password string `env:"EMAIL_PASS" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:""`
	FromName string `env:"EMAIL_FROM_NAME" env-default:"Clock It"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// ToSMTPConfig converts the config to a mailer.SMTPConfig. The sender address
// defaults to the SMTP username.
func (e EmailConfig) ToSMTPConfig() mailer.SMTPConfig {
	from := e.From
	if from == "" {
		from = e.Username
	}
	return mailer.SMTPConfig{
		Host:     e.Host,
		Port:     int(e.Port),
		Username: e.Username,
		Password: e.Password,
		From:     from,
		FromName: e.FromName,
		// Port 465 is implicit TLS.
		SSL: e.Port == 465,
		TLS: e.TLS,
	}
}
