// Package notification delivers email for application and claim
// lifecycle events. Delivery is best-effort: handlers run off the event
// bus and failures are logged, never surfaced to the request that
// triggered them.
package notification

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/ulasan/company-review/internal"
)

// SendFunc performs one SMTP delivery. Injectable for tests.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends HTML mail through a plain SMTP relay. A disabled mailer
// (no host configured) drops messages with a debug log line.
type Mailer struct {
	cfg    internal.SMTPConfig
	send   SendFunc
	logger *slog.Logger
}

func NewMailer(cfg internal.SMTPConfig, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger,
	}
}

// WithSendFunc replaces the SMTP transport. Used by tests.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		m.logger.Debug("mailer disabled, dropping message", "subject", subject, "recipients", len(to))
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.Sender() + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(m.cfg.Addr(), auth, m.cfg.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.logger.Info("mail sent", "subject", subject, "recipients", len(to))
	return nil
}
