// Package email delivers rendered messages through a configured transport.
// Two transports exist: AWS SES (the default) and plain SMTP for
// self-hosted deployments.
package email

import (
	"context"
	"time"
)

// OutboundMessage is a single email ready for delivery.
type OutboundMessage struct {
	To        string
	FromEmail string
	FromName  string
	ReplyTo   string
	Subject   string
	HTML      string
	Text      string
}

// SendResult reports the outcome of one delivery attempt. Transport-level
// failures for a recipient land in Error rather than the Send return value,
// so one bad address never aborts a batch.
type SendResult struct {
	Success   bool
	MessageID string
	Transport string
	Error     error
	SentAt    time.Time
}

// Transport sends a single message. Implementations return a non-nil error
// only for configuration or infrastructure problems; per-message delivery
// failures are reported through SendResult.Error.
type Transport interface {
	Send(ctx context.Context, msg *OutboundMessage) (*SendResult, error)
	Name() string
}
