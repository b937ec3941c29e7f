package mail

import (
	"context"

	"ministry/internal/domain/service"
	"ministry/internal/errors"

	"github.com/resend/resend-go/v2"
)

type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer delivers mail through the Resend HTTP API.
func NewResendMailer(apiKey, from string) service.Mailer {
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *resendMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{recipient},
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		return errors.Wrap(err, "resend: failed to send email")
	}

	return nil
}
