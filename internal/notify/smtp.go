package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPMailer sends plain-text mail over SMTP with AUTH PLAIN.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: smtp.PlainAuth("", username, password, host),
	}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("notify: smtp send to %s: %w", to, err)
	}
	return nil
}

// NoopMailer drops messages. Used when SMTP is disabled in config.
type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, _, _, _ string) error {
	return nil
}
