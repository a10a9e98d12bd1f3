package notification

import (
	"fmt"
	"net/smtp"

	"grandstay/config"
)

// Mailer sends email through the configured SMTP relay. It is consumed by the
// queue worker, not by request handlers.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// NewMailer builds a Mailer from the application configuration.
func NewMailer() *Mailer {
	return &Mailer{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		From:     config.AppConfig.SMTPFrom,
		Password: config.AppConfig.SMTPPassword,
	}
}

// Send delivers one email. The body is sent as HTML.
func (m *Mailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.From, to, subject, body,
	)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
