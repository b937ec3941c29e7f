package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrPaymentProvider wraps any failure or timeout talking to the provider.
	ErrPaymentProvider = errors.New("payment provider error")
	// ErrCheckoutSessionNotFound is returned when the provider does not know the session.
	ErrCheckoutSessionNotFound = errors.New("checkout session not found")
	// ErrWebhookSignature is returned for payloads that fail signature verification.
	ErrWebhookSignature = errors.New("webhook signature invalid")
)

// Provider-side checkout states.
const (
	SessionPaymentStatusPaid   = "paid"
	SessionPaymentStatusUnpaid = "unpaid"
	SessionStatusExpired       = "expired"
)

// CheckoutRequest describes the hosted checkout page to create.
type CheckoutRequest struct {
	DonationID    uuid.UUID
	AmountMinor   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	Metadata      map[string]string
}

// CheckoutSession is the provider's authoritative view of a checkout.
type CheckoutSession struct {
	ID              string
	URL             string
	Status          string // open, complete, expired
	PaymentStatus   string // paid, unpaid, no_payment_required
	AmountTotal     int64
	Currency        string
	PaymentIntentID string
}

// PaymentEventType is the normalized kind of a verified webhook event.
type PaymentEventType string

const (
	PaymentEventCheckoutCompleted PaymentEventType = "checkout_completed"
	PaymentEventAsyncSucceeded    PaymentEventType = "async_payment_succeeded"
	PaymentEventAsyncFailed       PaymentEventType = "async_payment_failed"
	PaymentEventSessionExpired    PaymentEventType = "session_expired"
	PaymentEventChargeRefunded    PaymentEventType = "charge_refunded"
	PaymentEventIgnored           PaymentEventType = "ignored"
)

// PaymentEvent is a verified webhook delivery.
type PaymentEvent struct {
	ID              string
	Type            PaymentEventType
	RawType         string
	Session         *CheckoutSession // Set for checkout session events.
	PaymentIntentID string           // Set for charge events.
}

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	// CreateCheckoutSession creates a hosted checkout page.
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)

	// GetCheckoutSession fetches the current state of a session.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ParseWebhook verifies the signature header against payload and decodes the event.
	ParseWebhook(payload []byte, signatureHeader string) (*PaymentEvent, error)
}
