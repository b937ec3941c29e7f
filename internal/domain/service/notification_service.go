package service

import (
	"context"
)

// Mailer delivers a single HTML email synchronously.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// Notifier sends best-effort email. Notify returns before delivery finishes
// and never reports delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, htmlBody string)
}
