package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of delivering them. It is the default when no transport is configured.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("component", "mailer").Logger()}
}

// Send implements Mailer.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail transport not configured, logging message")
	return nil
}
