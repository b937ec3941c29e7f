package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"ministry/config"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const maxDonationAmount = 1_000_000

// donationService reconciles local donations with the payment provider.
// Every state change goes through a conditional transition, so polls and
// duplicate webhooks racing on the same session apply it at most once.
type donationService struct {
	donationRepo    repository.DonationRepository
	gateway         service.PaymentGateway
	mail            *transactionalMail
	defaultCurrency string
	now             func() time.Time
	logger          *slog.Logger
}

// DonationServiceParams holds dependencies for DonationService, injected by Fx.
type DonationServiceParams struct {
	fx.In

	DonationRepo repository.DonationRepository
	Gateway      service.PaymentGateway
	Notifier     service.Notifier
	Config       *config.Config
	Logger       *slog.Logger
}

// NewDonationService is the constructor for donationService.
func NewDonationService(params DonationServiceParams) usecase.DonationUsecase {
	return newDonationService(params, time.Now)
}

func newDonationService(params DonationServiceParams, now func() time.Time) *donationService {
	return &donationService{
		donationRepo:    params.DonationRepo,
		gateway:         params.Gateway,
		mail:            newTransactionalMail(params.Notifier, params.Config, params.Logger),
		defaultCurrency: strings.ToLower(params.Config.Stripe.DefaultCurrency),
		now:             now,
		logger:          params.Logger,
	}
}

// CreateCheckout opens a provider session first and records the pending donation only on success.
func (srv *donationService) CreateCheckout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	donation, err := srv.newDonation(input)
	if err != nil {
		return nil, err
	}

	session, err := srv.gateway.CreateCheckoutSession(ctx, &service.CheckoutRequest{
		DonationID:    donation.ID,
		AmountMinor:   toMinorUnits(donation.Amount),
		Currency:      donation.Currency,
		ProductName:   "Donation - " + donation.Category.Label(),
		CustomerEmail: donation.DonorEmail,
		Metadata: map[string]string{
			"donation_id": donation.ID.String(),
			"category":    string(donation.Category),
			"frequency":   string(donation.Frequency),
		},
	})
	if err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to create checkout session", slog.Any("error", err))

		return nil, domainerrors.ErrPaymentProvider.WrapMessage(err.Error())
	}

	donation.StripeSessionID = session.ID
	if err := srv.donationRepo.Create(ctx, donation); err != nil {
		return nil, errors.Wrap(err, "failed to record donation")
	}

	requestLogger(ctx, srv.logger).Info("Checkout session created",
		slog.String("donation_id", donation.ID.String()),
		slog.String("session_id", session.ID),
	)

	return &usecase.CheckoutOutput{URL: session.URL, SessionID: session.ID}, nil
}

// GetStatus asks the provider for the authoritative state of the session.
func (srv *donationService) GetStatus(ctx context.Context, sessionID string) (*usecase.PaymentStatusOutput, error) {
	donation, err := srv.donationRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrDonationNotFound, domainerrors.ErrDonationNotFound)
	}

	session, err := srv.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, domainerrors.ErrPaymentProvider.WrapMessage(err.Error())
	}

	var changed bool
	switch {
	case session.PaymentStatus == service.SessionPaymentStatusPaid:
		changed, err = srv.markPaid(ctx, session)
	case session.Status == service.SessionStatusExpired:
		changed, err = srv.markFailed(ctx, session.ID)
	}
	if err != nil {
		return nil, err
	}

	if changed {
		if donation, err = srv.donationRepo.FindBySessionID(ctx, sessionID); err != nil {
			return nil, errors.Wrap(err, "failed to reload donation")
		}
	}

	amountTotal, currency := donation.AmountTotal, donation.Currency
	if amountTotal == 0 {
		amountTotal, currency = session.AmountTotal, session.Currency
	}

	return &usecase.PaymentStatusOutput{
		SessionID:      sessionID,
		PaymentStatus:  donation.PaymentStatus,
		ProviderStatus: session.PaymentStatus,
		AmountTotal:    amountTotal,
		Currency:       currency,
	}, nil
}

// HandleWebhook applies a verified provider event.
func (srv *donationService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*usecase.WebhookOutput, error) {
	event, err := srv.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, service.ErrWebhookSignature) {
			requestLogger(ctx, srv.logger).Warn("Rejected webhook with invalid signature")

			return nil, domainerrors.ErrInvalidWebhookSignature.WrapMessage(err.Error())
		}

		return nil, domainerrors.Invalid("payload", err.Error())
	}

	var applied bool
	switch event.Type {
	case service.PaymentEventCheckoutCompleted:
		// Delayed payment methods complete unpaid and confirm later.
		if event.Session.PaymentStatus == service.SessionPaymentStatusPaid {
			applied, err = srv.markPaid(ctx, event.Session)
		}
	case service.PaymentEventAsyncSucceeded:
		applied, err = srv.markPaid(ctx, event.Session)
	case service.PaymentEventAsyncFailed, service.PaymentEventSessionExpired:
		applied, err = srv.markFailed(ctx, event.Session.ID)
	case service.PaymentEventChargeRefunded:
		applied, err = srv.markRefunded(ctx, event.PaymentIntentID)
	case service.PaymentEventIgnored:
	}
	if err != nil {
		return nil, err
	}

	requestLogger(ctx, srv.logger).Info("Webhook processed",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.RawType),
		slog.Bool("applied", applied),
	)

	return &usecase.WebhookOutput{Received: true, EventType: event.RawType, Applied: applied}, nil
}

// List returns donations newest first.
func (srv *donationService) List(ctx context.Context, input *usecase.ListDonationsInput) (*usecase.Page[entity.Donation], error) {
	conditions := optionalEq(nil, "payment_status", input.Status)

	return listPage(ctx, srv.donationRepo, input.PageInput, order{column: "created_at", descending: true}, conditions...)
}

// markPaid records the provider's amounts and sends the receipt only when this call made the transition.
func (srv *donationService) markPaid(ctx context.Context, session *service.CheckoutSession) (bool, error) {
	changed, err := srv.donationRepo.TransitionBySession(ctx, session.ID, entity.PaymentTransition{
		From:            entity.PaymentStatusPending,
		To:              entity.PaymentStatusPaid,
		StripePaymentID: session.PaymentIntentID,
		AmountTotal:     session.AmountTotal,
		Currency:        strings.ToLower(session.Currency),
		At:              srv.now().UTC(),
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to mark donation paid")
	}
	if !changed {
		return false, nil
	}

	donation, err := srv.donationRepo.FindBySessionID(ctx, session.ID)
	if err != nil {
		requestLogger(ctx, srv.logger).Warn("Paid donation could not be reloaded for receipt",
			slog.String("session_id", session.ID),
			slog.Any("error", err),
		)

		return true, nil
	}

	srv.mail.send(ctx, donation.DonorEmail, "Thank you for your donation", mailDonationReceipt, receiptView{
		DonorName:   donation.DonorName,
		AmountTotal: donation.AmountTotal,
		Currency:    donation.Currency,
		Category:    donation.Category.Label(),
		Reference:   donation.ID.String(),
	})

	return true, nil
}

func (srv *donationService) markFailed(ctx context.Context, sessionID string) (bool, error) {
	changed, err := srv.donationRepo.TransitionBySession(ctx, sessionID, entity.PaymentTransition{
		From: entity.PaymentStatusPending,
		To:   entity.PaymentStatusFailed,
		At:   srv.now().UTC(),
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to mark donation failed")
	}

	return changed, nil
}

func (srv *donationService) markRefunded(ctx context.Context, paymentIntentID string) (bool, error) {
	changed, err := srv.donationRepo.TransitionByPaymentID(ctx, paymentIntentID, entity.PaymentTransition{
		From: entity.PaymentStatusPaid,
		To:   entity.PaymentStatusRefunded,
		At:   srv.now().UTC(),
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to mark donation refunded")
	}
	if !changed {
		srv.reportUnappliedRefund(ctx, paymentIntentID)
	}

	return changed, nil
}

// reportUnappliedRefund logs a refund that matched no paid donation. A refund
// delivered before the paid transition recorded the payment id is not replayed.
func (srv *donationService) reportUnappliedRefund(ctx context.Context, paymentIntentID string) {
	logger := requestLogger(ctx, srv.logger).With(slog.String("payment_intent_id", paymentIntentID))

	donation, err := srv.donationRepo.FindByPaymentID(ctx, paymentIntentID)
	switch {
	case errors.Is(err, repository.ErrDonationNotFound):
		logger.Warn("Refund matched no donation; it may have arrived before the payment was confirmed")
	case err != nil:
		logger.Warn("Refund matched no paid donation", slog.Any("error", err))
	case donation.PaymentStatus == entity.PaymentStatusRefunded:
		logger.Debug("Duplicate refund ignored", slog.String("donation_id", donation.ID.String()))
	default:
		logger.Warn("Refund ignored for donation that is not paid",
			slog.String("donation_id", donation.ID.String()),
			slog.String("payment_status", string(donation.PaymentStatus)),
		)
	}
}

func (srv *donationService) newDonation(input *usecase.CheckoutInput) (*entity.Donation, error) {
	if input.Amount <= 0 || input.Amount > maxDonationAmount || math.IsNaN(input.Amount) {
		return nil, domainerrors.Invalid("amount", fmt.Sprintf("must be greater than 0 and at most %d", maxDonationAmount))
	}

	category := input.Category
	if category == "" {
		category = entity.DonationCategoryGeneral
	}
	switch category {
	case entity.DonationCategoryGeneral, entity.DonationCategoryChildrensMinistry,
		entity.DonationCategoryBuildingFund, entity.DonationCategoryEmergency:
	default:
		return nil, domainerrors.Invalid("category", fmt.Sprintf("unknown category %q", category))
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = entity.DonationFrequencyOneTime
	}
	switch frequency {
	case entity.DonationFrequencyOneTime, entity.DonationFrequencyMonthly,
		entity.DonationFrequencyQuarterly, entity.DonationFrequencyYearly:
	default:
		return nil, domainerrors.Invalid("frequency", fmt.Sprintf("unknown frequency %q", frequency))
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = srv.defaultCurrency
	}
	if len(currency) != 3 {
		return nil, domainerrors.Invalid("currency", "must be a 3-letter ISO 4217 code")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate donation id")
	}

	return &entity.Donation{
		ID:            id,
		Amount:        input.Amount,
		Currency:      currency,
		Category:      category,
		Frequency:     frequency,
		DonorName:     strings.TrimSpace(input.DonorName),
		DonorEmail:    normalizeEmail(input.DonorEmail),
		DonorPhone:    strings.TrimSpace(input.DonorPhone),
		Message:       input.Message,
		IsAnonymous:   input.IsAnonymous,
		PaymentStatus: entity.PaymentStatusPending,
	}, nil
}

// receiptView feeds the donation receipt template.
type receiptView struct {
	DonorName   string
	AmountTotal int64
	Currency    string
	Category    string
	Reference   string
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func formatMinorUnits(amount int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(currency))
}
