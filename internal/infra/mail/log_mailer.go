package mail

import (
	"context"
	"log/slog"

	"ministry/internal/domain/service"
)

type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer records outgoing mail without delivering it.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, recipient, subject, _ string) error {
	m.logger.InfoContext(ctx, "Email not sent, no provider configured",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
	)

	return nil
}
