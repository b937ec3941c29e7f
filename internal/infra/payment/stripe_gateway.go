// Package payment implements the hosted checkout gateway on Stripe.
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Stripe event types handled by the reconciliation flow.
const (
	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	eventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	eventSessionExpired        = "checkout.session.expired"
	eventChargeRefunded        = "charge.refunded"
)

type stripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
	timeout       time.Duration
}

// NewStripeGateway is the constructor for the Stripe-backed PaymentGateway.
func NewStripeGateway(cfg *config.Config) service.PaymentGateway {
	return newStripeGateway(cfg.Stripe, client.New(cfg.Stripe.APIKey, nil))
}

func newStripeGateway(cfg config.StripeConfig, api *client.API) *stripeGateway {
	frontend := strings.TrimRight(cfg.FrontendURL, "/")

	return &stripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    frontend + "/donate/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     frontend + "/donate/cancel",
		timeout:       cfg.Timeout,
	}
}

// CreateCheckoutSession creates a one-line-item hosted checkout page in payment mode.
func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req *service.CheckoutRequest) (*service.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(req.DonationID.String()),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errors.Wrap(service.ErrPaymentProvider, err.Error())
	}

	return toCheckoutSession(session), nil
}

// GetCheckoutSession fetches the authoritative state of a session.
func (g *stripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, errors.Wrap(service.ErrCheckoutSessionNotFound, sessionID)
		}

		return nil, errors.Wrap(service.ErrPaymentProvider, err.Error())
	}

	return toCheckoutSession(session), nil
}

// ParseWebhook verifies the Stripe-Signature header before decoding anything.
func (g *stripeGateway) ParseWebhook(payload []byte, signatureHeader string) (*service.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, errors.Wrap(service.ErrWebhookSignature, err.Error())
	}

	return decodeEvent(event)
}

func decodeEvent(event stripe.Event) (*service.PaymentEvent, error) {
	out := &service.PaymentEvent{
		ID:      event.ID,
		RawType: string(event.Type),
		Type:    service.PaymentEventIgnored,
	}
	if event.Data == nil {
		return out, nil
	}

	switch string(event.Type) {
	case eventCheckoutCompleted, eventAsyncPaymentSucceeded, eventAsyncPaymentFailed, eventSessionExpired:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s payload", event.Type)
		}
		out.Session = toCheckoutSession(&session)
		out.Type = checkoutEventType(string(event.Type))
	case eventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s payload", event.Type)
		}
		if charge.PaymentIntent != nil {
			out.PaymentIntentID = charge.PaymentIntent.ID
		}
		out.Type = service.PaymentEventChargeRefunded
	}

	return out, nil
}

func checkoutEventType(raw string) service.PaymentEventType {
	switch raw {
	case eventCheckoutCompleted:
		return service.PaymentEventCheckoutCompleted
	case eventAsyncPaymentSucceeded:
		return service.PaymentEventAsyncSucceeded
	case eventAsyncPaymentFailed:
		return service.PaymentEventAsyncFailed
	case eventSessionExpired:
		return service.PaymentEventSessionExpired
	default:
		return service.PaymentEventIgnored
	}
}

func toCheckoutSession(session *stripe.CheckoutSession) *service.CheckoutSession {
	if session == nil {
		return nil
	}

	out := &service.CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
	}
	if session.PaymentIntent != nil {
		out.PaymentIntentID = session.PaymentIntent.ID
	}

	return out
}
