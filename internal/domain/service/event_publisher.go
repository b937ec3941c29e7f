package service

import (
	"context"
)

// MailEvent is a queued email delivered by the mail worker.
type MailEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	MessageID string `json:"message_id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	HTMLBody  string `json:"html_body"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMailEvent publishes a mail event for async delivery
	PublishMailEvent(ctx context.Context, event *MailEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
