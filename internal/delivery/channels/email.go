// Package channels holds the outbound delivery channels. Email is the only
// channel the escalation outbox uses today.
package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/IncharaS06/vital/config"
)

// EmailSender delivers HTML mail over SMTP via gomail.
type EmailSender struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromAddress string
}

// NewEmailSender builds an EmailSender from the server configuration.
func NewEmailSender(cfg *config.Configuration) *EmailSender {
	return &EmailSender{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromName:    cfg.MailFromName,
		fromAddress: cfg.MailFromAddress,
	}
}

// Send delivers one message. A returned error means the message did not leave
// the SMTP dialer; the caller records it on the outbox item.
func (s *EmailSender) Send(recipient, subject, htmlBody string) error {
	if s.host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress))
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return dialer.DialAndSend(msg)
}
