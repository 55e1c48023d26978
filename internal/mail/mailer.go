// Package mail wraps the outbound mail collaborator. Only the contact flow
// sends mail; delivery internals stay behind the Sender interface so tests
// can fake them.
package mail

import (
	"fmt"
	"net/smtp"

	"github.com/piyush5566/job-portal-go/internal/config"
)

type Sender interface {
	Send(to, from, subject, body string) error
}

// SMTPSender delivers through a plain SMTP relay. Auth is applied only when
// credentials are configured.
type SMTPSender struct {
	addr     string
	host     string
	user     string
	password string
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		addr:     cfg.SMTPHost + ":" + cfg.SMTPPort,
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

func (s *SMTPSender) Send(to, from, subject, body string) error {
	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	if err := smtp.SendMail(s.addr, auth, from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
