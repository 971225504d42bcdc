// Package mailer provides the outbound transports used to deliver alert messages.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"recycling-api/internal/config"

	"github.com/rs/zerolog"
)

// Message is a plain-text notification.
type Message struct {
	Subject string
	Body    string
}

// Mailer delivers a message to the configured recipients.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Supported values of config.Config.MailBackend.
const (
	BackendLog      = "log"
	BackendSMTP     = "smtp"
	BackendSendGrid = "sendgrid"
)

// New builds the transport selected by cfg.MailBackend.
func New(cfg config.Config, logger zerolog.Logger) (Mailer, error) {
	recipients := cfg.Recipients()

	backend := strings.ToLower(strings.TrimSpace(cfg.MailBackend))
	switch backend {
	case "", BackendLog:
		return NewLogMailer(logger), nil
	case BackendSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("mailer: SMTP_HOST is required for the smtp backend")
		}
		if len(recipients) == 0 {
			return nil, fmt.Errorf("mailer: MAIL_TO is required for the smtp backend")
		}
		return NewSMTPMailer(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			To:       recipients,
		}), nil
	case BackendSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("mailer: SENDGRID_API_KEY is required for the sendgrid backend")
		}
		if len(recipients) == 0 {
			return nil, fmt.Errorf("mailer: MAIL_TO is required for the sendgrid backend")
		}
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, recipients, cfg.SendGridSandbox), nil
	default:
		return nil, fmt.Errorf("mailer: unknown mail backend %q", cfg.MailBackend)
	}
}
