package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/geospatial-academy/training-hub-api/pkg/config"
)

// Message is a renderable outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages through an outbound channel.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends HTML mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP builds a mailer from SMTP configuration. It returns an error when
// credentials are missing so callers can fall back to a nop notifier.
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials not configured")
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}, nil
}

// Send delivers a single message synchronously.
func (m *SMTPMailer) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}
