// Package mail delivers transactional email: confirmation and login codes,
// password resets, admin welcome messages and contact form notifications.
package mail

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// DefaultFrom is the sender address used when none is configured.
const DefaultFrom = `"Thierry Azur 06" <no-reply@thierry-azure.fr>`

// ErrInvalidMessage is returned for a message without recipient or subject.
var ErrInvalidMessage = errors.New("mail: recipient and subject are required")

// Message is one outgoing email. At least one of HTML and Text is set.
type Message struct {
	To             string
	Subject        string
	HTML           string
	Text           string
	// IdempotencyKey is forwarded to providers that deduplicate on it.
	IdempotencyKey string
}

func (m Message) validate() error {
	if m.To == "" || m.Subject == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Sender delivers a message through some transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender only logs. It is used when no provider is configured.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	zap.L().Info("noop mail sender", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
