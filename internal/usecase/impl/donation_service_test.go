package impl

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type donationFixture struct {
	srv      *donationService
	repo     *fakeDonationRepo
	gateway  *mockPaymentGateway
	notifier *recordingNotifier
}

func newDonationFixture(t *testing.T) *donationFixture {
	t.Helper()

	f := &donationFixture{
		repo:     newFakeDonationRepo(),
		gateway:  &mockPaymentGateway{},
		notifier: &recordingNotifier{},
	}
	f.srv = newDonationService(DonationServiceParams{
		DonationRepo: f.repo,
		Gateway:      f.gateway,
		Notifier:     f.notifier,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	}, func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { f.gateway.AssertExpectations(t) })

	return f
}

// checkout creates a pending donation tied to sessionID.
func (f *donationFixture) checkout(t *testing.T, sessionID string) {
	t.Helper()

	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(&service.CheckoutSession{
		ID:  sessionID,
		URL: "https://checkout.example/" + sessionID,
	}, nil).Once()

	_, err := f.srv.CreateCheckout(context.Background(), &usecase.CheckoutInput{
		Amount:     50,
		DonorName:  "Grace Akol",
		DonorEmail: "grace@example.org",
	})
	require.NoError(t, err)
}

func paidSession(sessionID string) *service.CheckoutSession {
	return &service.CheckoutSession{
		ID:              sessionID,
		Status:          "complete",
		PaymentStatus:   service.SessionPaymentStatusPaid,
		AmountTotal:     5000,
		Currency:        "USD",
		PaymentIntentID: "pi_" + sessionID,
	}
}

func (f *donationFixture) donation(t *testing.T, sessionID string) *entity.Donation {
	t.Helper()

	donation, err := f.repo.FindBySessionID(context.Background(), sessionID)
	require.NoError(t, err)

	return donation
}

func TestDonationService_CreateCheckout(t *testing.T) {
	t.Run("opens a session and records a pending donation", func(t *testing.T) {
		f := newDonationFixture(t)

		var captured *service.CheckoutRequest
		f.gateway.On("CreateCheckoutSession", mock.Anything, mock.AnythingOfType("*service.CheckoutRequest")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*service.CheckoutRequest) }).
			Return(&service.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil).Once()

		out, err := f.srv.CreateCheckout(context.Background(), &usecase.CheckoutInput{
			Amount:     25.5,
			Currency:   "EUR",
			Category:   entity.DonationCategoryBuildingFund,
			Frequency:  entity.DonationFrequencyMonthly,
			DonorEmail: "Grace@Example.org",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example/cs_1", out.URL)
		assert.Equal(t, "cs_1", out.SessionID)

		require.NotNil(t, captured)
		assert.Equal(t, int64(2550), captured.AmountMinor)
		assert.Equal(t, "eur", captured.Currency)
		assert.Equal(t, "Donation - Building Fund", captured.ProductName)
		assert.Equal(t, "building_fund", captured.Metadata["category"])
		assert.Equal(t, "monthly", captured.Metadata["frequency"])
		assert.Equal(t, captured.DonationID.String(), captured.Metadata["donation_id"])

		donation := f.donation(t, "cs_1")
		assert.Equal(t, captured.DonationID, donation.ID)
		assert.Equal(t, entity.PaymentStatusPending, donation.PaymentStatus)
		assert.Equal(t, "grace@example.org", donation.DonorEmail)
	})

	t.Run("defaults category frequency and currency", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_defaults")

		donation := f.donation(t, "cs_defaults")
		assert.Equal(t, entity.DonationCategoryGeneral, donation.Category)
		assert.Equal(t, entity.DonationFrequencyOneTime, donation.Frequency)
		assert.Equal(t, "usd", donation.Currency)
	})

	t.Run("provider failure records nothing", func(t *testing.T) {
		f := newDonationFixture(t)
		f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, errors.New("timeout")).Once()

		_, err := f.srv.CreateCheckout(context.Background(), &usecase.CheckoutInput{Amount: 10})
		assert.True(t, errors.Is(err, domainerrors.ErrPaymentProvider))
		assert.Empty(t, f.repo.all())
	})

	t.Run("invalid input never reaches the provider", func(t *testing.T) {
		tests := []struct {
			name  string
			input usecase.CheckoutInput
			field string
		}{
			{name: "zero amount", input: usecase.CheckoutInput{Amount: 0}, field: "amount"},
			{name: "amount too large", input: usecase.CheckoutInput{Amount: 1_000_001}, field: "amount"},
			{name: "unknown category", input: usecase.CheckoutInput{Amount: 5, Category: "yachts"}, field: "category"},
			{name: "unknown frequency", input: usecase.CheckoutInput{Amount: 5, Frequency: "hourly"}, field: "frequency"},
			{name: "bad currency", input: usecase.CheckoutInput{Amount: 5, Currency: "dollars"}, field: "currency"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newDonationFixture(t)

				_, err := f.srv.CreateCheckout(context.Background(), &tt.input)

				var validationErr *domainerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.field, validationErr.Fields[0].Field)
				f.gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestDonationService_HandleWebhook(t *testing.T) {
	t.Run("duplicate deliveries mark paid once and send one receipt", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_dup")

		payload := []byte(`{"id":"evt_1"}`)
		f.gateway.On("ParseWebhook", payload, "sig").Return(&service.PaymentEvent{
			ID:      "evt_1",
			Type:    service.PaymentEventCheckoutCompleted,
			RawType: "checkout.session.completed",
			Session: paidSession("cs_dup"),
		}, nil).Twice()

		first, err := f.srv.HandleWebhook(context.Background(), payload, "sig")
		require.NoError(t, err)
		assert.True(t, first.Applied)

		second, err := f.srv.HandleWebhook(context.Background(), payload, "sig")
		require.NoError(t, err)
		assert.True(t, second.Received)
		assert.False(t, second.Applied)

		donation := f.donation(t, "cs_dup")
		assert.Equal(t, entity.PaymentStatusPaid, donation.PaymentStatus)
		assert.Equal(t, "pi_cs_dup", donation.StripePaymentID)
		assert.Equal(t, int64(5000), donation.AmountTotal)
		assert.Equal(t, "usd", donation.Currency)
		assert.NotNil(t, donation.PaidAt)
		assert.Equal(t, 1, f.repo.transitions)

		sent := f.notifier.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "grace@example.org", sent[0].Recipient)
		assert.Contains(t, sent[0].Body, "50.00 USD")
	})

	t.Run("concurrent duplicate deliveries", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_race")

		f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(&service.PaymentEvent{
			ID:      "evt_race",
			Type:    service.PaymentEventCheckoutCompleted,
			RawType: "checkout.session.completed",
			Session: paidSession("cs_race"),
		}, nil)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.srv.HandleWebhook(context.Background(), []byte("{}"), "sig")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, f.repo.transitions)
		assert.Len(t, f.notifier.sent(), 1)
	})

	t.Run("bad signature changes nothing", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_sig")
		before := f.donation(t, "cs_sig")

		f.gateway.On("ParseWebhook", mock.Anything, "forged").
			Return(nil, errors.Wrap(service.ErrWebhookSignature, "no valid signature")).Once()

		_, err := f.srv.HandleWebhook(context.Background(), []byte(`{"type":"checkout.session.completed"}`), "forged")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidWebhookSignature))

		assert.Equal(t, before, f.donation(t, "cs_sig"))
		assert.Zero(t, f.repo.transitions)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newDonationFixture(t)
		f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(nil, errors.New("unexpected end of JSON input")).Once()

		_, err := f.srv.HandleWebhook(context.Background(), []byte("{"), "sig")

		var validationErr *domainerrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("unpaid completion waits for async confirmation", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_async")

		unpaid := paidSession("cs_async")
		unpaid.PaymentStatus = service.SessionPaymentStatusUnpaid
		f.gateway.On("ParseWebhook", []byte("completed"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventCheckoutCompleted, Session: unpaid,
		}, nil).Once()
		f.gateway.On("ParseWebhook", []byte("succeeded"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventAsyncSucceeded, Session: paidSession("cs_async"),
		}, nil).Once()

		out, err := f.srv.HandleWebhook(context.Background(), []byte("completed"), "sig")
		require.NoError(t, err)
		assert.False(t, out.Applied)
		assert.Equal(t, entity.PaymentStatusPending, f.donation(t, "cs_async").PaymentStatus)

		out, err = f.srv.HandleWebhook(context.Background(), []byte("succeeded"), "sig")
		require.NoError(t, err)
		assert.True(t, out.Applied)
		assert.Equal(t, entity.PaymentStatusPaid, f.donation(t, "cs_async").PaymentStatus)
	})

	t.Run("expired then late success is ignored", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_exp")

		f.gateway.On("ParseWebhook", []byte("expired"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventSessionExpired, Session: &service.CheckoutSession{ID: "cs_exp"},
		}, nil).Once()
		f.gateway.On("ParseWebhook", []byte("paid"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventCheckoutCompleted, Session: paidSession("cs_exp"),
		}, nil).Once()

		_, err := f.srv.HandleWebhook(context.Background(), []byte("expired"), "sig")
		require.NoError(t, err)
		out, err := f.srv.HandleWebhook(context.Background(), []byte("paid"), "sig")
		require.NoError(t, err)

		assert.False(t, out.Applied)
		assert.Equal(t, entity.PaymentStatusFailed, f.donation(t, "cs_exp").PaymentStatus)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("refund applies only to paid donations", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_refund")

		refund := &service.PaymentEvent{Type: service.PaymentEventChargeRefunded, PaymentIntentID: "pi_cs_refund"}
		f.gateway.On("ParseWebhook", []byte("refund"), "sig").Return(refund, nil)
		f.gateway.On("ParseWebhook", []byte("paid"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventCheckoutCompleted, Session: paidSession("cs_refund"),
		}, nil).Once()

		out, err := f.srv.HandleWebhook(context.Background(), []byte("refund"), "sig")
		require.NoError(t, err)
		assert.False(t, out.Applied)

		_, err = f.srv.HandleWebhook(context.Background(), []byte("paid"), "sig")
		require.NoError(t, err)

		out, err = f.srv.HandleWebhook(context.Background(), []byte("refund"), "sig")
		require.NoError(t, err)
		assert.True(t, out.Applied)
		assert.Equal(t, entity.PaymentStatusRefunded, f.donation(t, "cs_refund").PaymentStatus)
	})

	t.Run("early refund is reported, duplicate refund is quiet", func(t *testing.T) {
		f := newDonationFixture(t)
		var logs bytes.Buffer
		f.srv.logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		f.checkout(t, "cs_early")

		refund := &service.PaymentEvent{Type: service.PaymentEventChargeRefunded, PaymentIntentID: "pi_cs_early"}
		f.gateway.On("ParseWebhook", []byte("refund"), "sig").Return(refund, nil)
		f.gateway.On("ParseWebhook", []byte("paid"), "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventCheckoutCompleted, Session: paidSession("cs_early"),
		}, nil).Once()

		_, err := f.srv.HandleWebhook(context.Background(), []byte("refund"), "sig")
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "payment_intent_id=pi_cs_early")
		assert.Equal(t, entity.PaymentStatusPending, f.donation(t, "cs_early").PaymentStatus)

		_, err = f.srv.HandleWebhook(context.Background(), []byte("paid"), "sig")
		require.NoError(t, err)
		_, err = f.srv.HandleWebhook(context.Background(), []byte("refund"), "sig")
		require.NoError(t, err)

		logs.Reset()
		out, err := f.srv.HandleWebhook(context.Background(), []byte("refund"), "sig")
		require.NoError(t, err)
		assert.False(t, out.Applied)
		assert.NotContains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "Duplicate refund ignored")
	})

	t.Run("ignored event types are acknowledged", func(t *testing.T) {
		f := newDonationFixture(t)
		f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventIgnored, RawType: "customer.created",
		}, nil).Once()

		out, err := f.srv.HandleWebhook(context.Background(), []byte("{}"), "sig")
		require.NoError(t, err)
		assert.True(t, out.Received)
		assert.False(t, out.Applied)
		assert.Equal(t, "customer.created", out.EventType)
	})
}

func TestDonationService_GetStatus(t *testing.T) {
	t.Run("poll confirms payment and a later webhook is a no-op", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_poll")

		f.gateway.On("GetCheckoutSession", mock.Anything, "cs_poll").Return(paidSession("cs_poll"), nil).Twice()
		f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(&service.PaymentEvent{
			Type: service.PaymentEventCheckoutCompleted, Session: paidSession("cs_poll"),
		}, nil).Once()

		out, err := f.srv.GetStatus(context.Background(), "cs_poll")
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus)
		assert.Equal(t, "paid", out.ProviderStatus)
		assert.Equal(t, int64(5000), out.AmountTotal)
		assert.Equal(t, "usd", out.Currency)

		_, err = f.srv.GetStatus(context.Background(), "cs_poll")
		require.NoError(t, err)

		webhook, err := f.srv.HandleWebhook(context.Background(), []byte("{}"), "sig")
		require.NoError(t, err)
		assert.False(t, webhook.Applied)

		assert.Len(t, f.notifier.sent(), 1)
	})

	t.Run("expired session fails the donation", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_gone")

		f.gateway.On("GetCheckoutSession", mock.Anything, "cs_gone").Return(&service.CheckoutSession{
			ID: "cs_gone", Status: service.SessionStatusExpired, PaymentStatus: service.SessionPaymentStatusUnpaid,
			AmountTotal: 5000, Currency: "usd",
		}, nil).Once()

		out, err := f.srv.GetStatus(context.Background(), "cs_gone")
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusFailed, out.PaymentStatus)
		assert.Equal(t, int64(5000), out.AmountTotal)
	})

	t.Run("unknown session never reaches the provider", func(t *testing.T) {
		f := newDonationFixture(t)

		_, err := f.srv.GetStatus(context.Background(), "cs_missing")
		assert.True(t, errors.Is(err, domainerrors.ErrDonationNotFound))
		f.gateway.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newDonationFixture(t)
		f.checkout(t, "cs_down")
		f.gateway.On("GetCheckoutSession", mock.Anything, "cs_down").Return(nil, errors.New("503")).Once()

		_, err := f.srv.GetStatus(context.Background(), "cs_down")
		assert.True(t, errors.Is(err, domainerrors.ErrPaymentProvider))
		assert.Equal(t, entity.PaymentStatusPending, f.donation(t, "cs_down").PaymentStatus)
	})
}

func TestDonationService_List(t *testing.T) {
	f := newDonationFixture(t)
	f.checkout(t, "cs_a")
	f.checkout(t, "cs_b")
	f.gateway.On("GetCheckoutSession", mock.Anything, "cs_b").Return(paidSession("cs_b"), nil).Once()
	_, err := f.srv.GetStatus(context.Background(), "cs_b")
	require.NoError(t, err)

	all, err := f.srv.List(context.Background(), &usecase.ListDonationsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 20, all.Limit)

	paid, err := f.srv.List(context.Background(), &usecase.ListDonationsInput{Status: entity.PaymentStatusPaid})
	require.NoError(t, err)
	require.Len(t, paid.Items, 1)
	assert.Equal(t, "cs_b", paid.Items[0].StripeSessionID)
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "25.50 USD", formatMinorUnits(2550, "usd"))
	assert.Equal(t, "0.05 EUR", formatMinorUnits(5, "eur"))
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
}
