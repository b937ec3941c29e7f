package repository

import (
	"context"
	"errors"

	"ministry/internal/domain/entity"
)

// ErrDonationNotFound is returned when no donation matches the session or payment id.
var ErrDonationNotFound = errors.New("donation not found")

// DonationRepository persists donations and applies payment state transitions.
type DonationRepository interface {
	// Create persists a new donation.
	Create(ctx context.Context, donation *entity.Donation) error

	// FindBySessionID retrieves the donation created for a checkout session.
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Donation, error)

	// FindByPaymentID retrieves the donation confirmed with a provider payment id.
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Donation, error)

	// List returns an ordered page of donations.
	List(ctx context.Context, query ListQuery) ([]*entity.Donation, error)

	// Count returns the number of donations matching all conditions.
	Count(ctx context.Context, conditions ...Condition) (int64, error)

	// TransitionBySession moves the donation for sessionID from t.From to t.To
	// only if it is still in t.From. It reports whether a row changed.
	TransitionBySession(ctx context.Context, sessionID string, t entity.PaymentTransition) (bool, error)

	// TransitionByPaymentID is TransitionBySession keyed by the provider payment id.
	TransitionByPaymentID(ctx context.Context, paymentID string, t entity.PaymentTransition) (bool, error)
}
