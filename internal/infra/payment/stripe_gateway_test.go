package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "."))
	mac.Write(payload)

	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) *stripeGateway {
	t.Helper()

	cfg := config.StripeConfig{
		APIKey:        "sk_test_123",
		WebhookSecret: testWebhookSecret,
		FrontendURL:   "https://church.example/",
		Timeout:       5 * time.Second,
	}
	if handler == nil {
		return newStripeGateway(cfg, client.New(cfg.APIKey, nil))
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		HTTPClient:        server.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	return newStripeGateway(cfg, client.New(cfg.APIKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	}))
}

func TestParseWebhook_CheckoutCompleted(t *testing.T) {
	gateway := newTestGateway(t, nil)
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"status": "complete",
			"payment_status": "paid",
			"amount_total": 5000,
			"currency": "usd",
			"payment_intent": "pi_123"
		}}
	}`)

	event, err := gateway.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, service.PaymentEventCheckoutCompleted, event.Type)
	require.NotNil(t, event.Session)
	assert.Equal(t, "cs_test_1", event.Session.ID)
	assert.Equal(t, service.SessionPaymentStatusPaid, event.Session.PaymentStatus)
	assert.Equal(t, int64(5000), event.Session.AmountTotal)
	assert.Equal(t, "usd", event.Session.Currency)
	assert.Equal(t, "pi_123", event.Session.PaymentIntentID)
}

func TestParseWebhook_ChargeRefunded(t *testing.T) {
	gateway := newTestGateway(t, nil)
	payload := []byte(`{
		"id": "evt_2",
		"object": "event",
		"type": "charge.refunded",
		"data": {"object": {"id": "ch_1", "object": "charge", "payment_intent": "pi_123"}}
	}`)

	event, err := gateway.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, service.PaymentEventChargeRefunded, event.Type)
	assert.Equal(t, "pi_123", event.PaymentIntentID)
}

func TestParseWebhook_UnhandledTypeIsIgnored(t *testing.T) {
	gateway := newTestGateway(t, nil)
	payload := []byte(`{"id": "evt_3", "object": "event", "type": "customer.created", "data": {"object": {"id": "cus_1"}}}`)

	event, err := gateway.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, service.PaymentEventIgnored, event.Type)
	assert.Equal(t, "customer.created", event.RawType)
}

func TestParseWebhook_RejectsBadSignatures(t *testing.T) {
	gateway := newTestGateway(t, nil)
	payload := []byte(`{"id": "evt_1", "object": "event", "type": "checkout.session.completed", "data": {"object": {}}}`)

	tests := map[string]string{
		"missing header": "",
		"wrong secret":   signPayload(payload, "whsec_other", time.Now()),
		"stale":          signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)),
		"garbage":        "t=abc,v1=def",
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := gateway.ParseWebhook(payload, header)
			assert.ErrorIs(t, err, service.ErrWebhookSignature)
		})
	}

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, time.Now())
		tampered := []byte(`{"id": "evt_9", "object": "event", "type": "checkout.session.completed", "data": {"object": {}}}`)

		_, err := gateway.ParseWebhook(tampered, header)
		assert.ErrorIs(t, err, service.ErrWebhookSignature)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	var form url.Values
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		form, err = url.ParseQuery(string(body))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": "cs_test_1", "object": "checkout.session", "url": "https://checkout.stripe.com/c/pay/cs_test_1", "status": "open", "payment_status": "unpaid", "amount_total": 2550, "currency": "usd"}`)
	})

	donationID := uuid.New()
	session, err := gateway.CreateCheckoutSession(context.Background(), &service.CheckoutRequest{
		DonationID:  donationID,
		AmountMinor: 2550,
		Currency:    "usd",
		ProductName: "Building Fund",
		Metadata:    map[string]string{"category": "building_fund"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "2550", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Building Fund", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "building_fund", form.Get("metadata[category]"))
	assert.Equal(t, donationID.String(), form.Get("client_reference_id"))
	assert.Equal(t, "https://church.example/donate/success?session_id={CHECKOUT_SESSION_ID}", form.Get("success_url"))
	assert.Equal(t, "https://church.example/donate/cancel", form.Get("cancel_url"))
}

func TestCreateCheckoutSession_ProviderFailure(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": {"type": "invalid_request_error", "message": "Invalid currency"}}`)
	})

	_, err := gateway.CreateCheckoutSession(context.Background(), &service.CheckoutRequest{
		AmountMinor: 100,
		Currency:    "zzz",
		ProductName: "General Fund",
	})
	assert.ErrorIs(t, err, service.ErrPaymentProvider)
}

func TestGetCheckoutSession_NotFound(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error": {"type": "invalid_request_error", "code": "resource_missing", "message": "No such checkout.session"}}`)
	})

	_, err := gateway.GetCheckoutSession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, service.ErrCheckoutSessionNotFound)
}
