package impl

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//nolint:gochecknoglobals
var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": formatMinorUnits,
}).ParseFS(templateFS, "templates/*.html"))

// Template names.
const (
	mailWelcome           = "welcome.html"
	mailPrayerReceived    = "prayer_received.html"
	mailVolunteerReceived = "volunteer_received.html"
	mailRSVPConfirmation  = "rsvp_confirmation.html"
	mailDonationReceipt   = "donation_receipt.html"
)

// mailView is the root value handed to every template.
type mailView struct {
	Ministry config.MinistryConfig
	Data     any
}

// transactionalMail renders templates and hands them to the Notifier.
type transactionalMail struct {
	notifier service.Notifier
	ministry config.MinistryConfig
	logger   *slog.Logger
}

func newTransactionalMail(notifier service.Notifier, cfg *config.Config, logger *slog.Logger) *transactionalMail {
	return &transactionalMail{
		notifier: notifier,
		ministry: cfg.Ministry,
		logger:   logger,
	}
}

// send renders the named template and notifies recipient. It never fails the caller.
func (m *transactionalMail) send(ctx context.Context, recipient, subject, name string, data any) {
	if recipient == "" {
		return
	}

	body, err := renderMail(name, mailView{Ministry: m.ministry, Data: data})
	if err != nil {
		requestLogger(ctx, m.logger).Error("Failed to render email",
			slog.String("template", name),
			slog.Any("error", err),
		)

		return
	}

	m.notifier.Notify(ctx, recipient, subject, body)
}

func renderMail(name string, view mailView) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", errors.Wrapf(err, "failed to execute %s", name)
	}

	return buf.String(), nil
}
