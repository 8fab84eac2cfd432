package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer delivers out-of-band account emails (verification links, password
// resets).
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

// Send delivers one message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of delivering them. Used when
// no SMTP relay is configured and in tests.
type LogMailer struct{}

// Send logs one message.
func (LogMailer) Send(to, subject, body string) error {
	slog.Info("mail (not delivered, no relay configured)", "to", to, "subject", subject, "body", body)
	return nil
}
