package usecase

import (
	"context"

	"ministry/internal/domain/entity"
)

// CheckoutInput describes a gift the donor is about to pay for.
type CheckoutInput struct {
	Amount      float64                  `json:"amount" validate:"required,gt=0,lte=1000000"`
	Currency    string                   `json:"currency" validate:"omitempty,len=3,alpha"`
	Category    entity.DonationCategory  `json:"category" validate:"omitempty,oneof=general childrens_ministry building_fund emergency"`
	Frequency   entity.DonationFrequency `json:"frequency" validate:"omitempty,oneof=one_time monthly quarterly yearly"`
	DonorName   string                   `json:"donor_name" validate:"omitempty,max=100"`
	DonorEmail  string                   `json:"donor_email" validate:"omitempty,email"`
	DonorPhone  string                   `json:"donor_phone" validate:"omitempty,max=30"`
	Message     string                   `json:"message" validate:"omitempty,max=1000"`
	IsAnonymous bool                     `json:"is_anonymous"`
}

// CheckoutOutput points the donor at the hosted checkout page.
type CheckoutOutput struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentStatusOutput is the reconciled state of a checkout session.
type PaymentStatusOutput struct {
	SessionID      string               `json:"session_id"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	ProviderStatus string               `json:"provider_status"`
	AmountTotal    int64                `json:"amount_total"`
	Currency       string               `json:"currency"`
}

// WebhookOutput acknowledges a verified webhook delivery.
type WebhookOutput struct {
	Received  bool   `json:"received"`
	EventType string `json:"event_type"`
	Applied   bool   `json:"applied"`
}

// ListDonationsInput filters the admin donation listing.
type ListDonationsInput struct {
	PageInput
	Status entity.PaymentStatus `query:"status" validate:"omitempty,oneof=pending paid failed refunded"`
}

// DonationUsecase creates checkout sessions and reconciles their payment state.
type DonationUsecase interface {
	CreateCheckout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)

	// GetStatus re-reads the session from the provider and applies any pending transition.
	GetStatus(ctx context.Context, sessionID string) (*PaymentStatusOutput, error)

	// HandleWebhook verifies payload against signature before reading any field.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookOutput, error)

	List(ctx context.Context, input *ListDonationsInput) (*Page[entity.Donation], error)
}
