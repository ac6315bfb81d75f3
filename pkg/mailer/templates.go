package mailer

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const PasswordResetSubject = "Clock It - Password Reset"

//go:embed templates/*
var templateFiles embed.FS

var (
	passwordResetHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFiles, "templates/password_reset.html"))
	passwordResetText = texttemplate.Must(texttemplate.ParseFS(templateFiles, "templates/password_reset.txt"))
)

// PasswordResetData fills the password reset templates.
type PasswordResetData struct {
	FirstName     string
	ResetURL      string
	ExpiryMinutes int
}

// PasswordResetMessage renders the reset email for to.
func PasswordResetMessage(to string, data PasswordResetData) (Message, error) {
	var html, text bytes.Buffer
	if err := passwordResetHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := passwordResetText.Execute(&text, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: PasswordResetSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
