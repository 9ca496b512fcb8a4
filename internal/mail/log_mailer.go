package mail

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogMailer writes messages to the log instead of delivering them. Used when
// no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("mail not delivered (log mailer)")
	return nil
}
