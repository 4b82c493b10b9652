// Package mailer delivers outbound email. The Sender interface keeps the
// transport swappable: SMTP in deployed environments, a logging sender in
// development and an in-memory outbox in tests.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Message is a single plain-text email.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Sender dispatches a message. Implementations must not retry silently;
// a failed send is reported to the caller.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ErrNoRecipients is returned when a message has no To addresses.
var ErrNoRecipients = errors.New("mailer: message has no recipients")

// LogSender writes messages to the structured log instead of sending them.
// Used in development when no SMTP host is configured.
type LogSender struct{}

// Send logs the message.
func (LogSender) Send(_ context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	slog.Info("email (not sent, no SMTP configured)",
		"from", msg.From,
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
