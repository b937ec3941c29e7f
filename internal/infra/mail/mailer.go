// Package mail provides the Mailer backends used for transactional email.
package mail

import (
	"log/slog"
	"strings"

	"ministry/config"
	"ministry/internal/domain/constants"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
)

// NewMailer selects the backend named by email.provider.
// An empty provider yields a mailer that only logs.
func NewMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Email.Provider))
	from := formatFrom(cfg.Email.FromName, cfg.Email.SenderAddress)

	switch provider {
	case constants.MailProviderResend:
		if cfg.Email.ResendAPIKey == "" {
			return nil, errors.New("email.resendApiKey is required for the resend provider")
		}
		logger.Info("Using Resend mailer", slog.String("from", cfg.Email.SenderAddress))

		return NewResendMailer(cfg.Email.ResendAPIKey, from), nil
	case constants.MailProviderSMTP:
		if cfg.Email.SMTP.Host == "" {
			return nil, errors.New("email.smtp.host is required for the smtp provider")
		}
		logger.Info("Using SMTP mailer", slog.String("host", cfg.Email.SMTP.Host))

		return NewSMTPMailer(cfg.Email.SMTP, cfg.Email.SenderAddress, from), nil
	case "":
		logger.Warn("No email provider configured, outgoing mail will only be logged")

		return NewLogMailer(logger), nil
	default:
		return nil, errors.Errorf("unsupported email provider: %s", cfg.Email.Provider)
	}
}

func formatFrom(name, address string) string {
	if name == "" {
		return address
	}

	return name + " <" + address + ">"
}
