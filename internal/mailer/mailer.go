// Package mailer delivers transactional mail, currently only the
// password-reset message.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/dom/devdreams-backend/internal/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.EmailHost,
		port:     cfg.EmailPort,
		username: cfg.EmailUsername,
		password: cfg.EmailPassword,
		from:     cfg.EmailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

var _ Mailer = (*SMTPMailer)(nil)
