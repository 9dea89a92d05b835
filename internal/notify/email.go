package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// Email is an outbound message for the SMTP sender.
type Email struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type EmailSender interface {
	SendEmail(ctx context.Context, e Email) error
}

// SMTPSender delivers mail through a plain SMTP transport.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *SMTPSender) SendEmail(ctx context.Context, e Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	if e.HTML {
		m.SetBody("text/html", e.Body)
	} else {
		m.SetBody("text/plain", e.Body)
	}
	return s.dialer.DialAndSend(m)
}
