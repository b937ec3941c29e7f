package entity

import (
	"time"

	"github.com/google/uuid"
)

// DonationCategory is the fund a gift is designated for.
type DonationCategory string

const (
	DonationCategoryGeneral           DonationCategory = "general"
	DonationCategoryChildrensMinistry DonationCategory = "childrens_ministry"
	DonationCategoryBuildingFund      DonationCategory = "building_fund"
	DonationCategoryEmergency         DonationCategory = "emergency"
)

// Label returns a human-readable name used on checkout line items and receipts.
func (c DonationCategory) Label() string {
	switch c {
	case DonationCategoryChildrensMinistry:
		return "Children's Ministry"
	case DonationCategoryBuildingFund:
		return "Building Fund"
	case DonationCategoryEmergency:
		return "Emergency Relief"
	default:
		return "General Fund"
	}
}

// DonationFrequency records how often the donor intends to give.
type DonationFrequency string

const (
	DonationFrequencyOneTime   DonationFrequency = "one_time"
	DonationFrequencyMonthly   DonationFrequency = "monthly"
	DonationFrequencyQuarterly DonationFrequency = "quarterly"
	DonationFrequencyYearly    DonationFrequency = "yearly"
)

// PaymentStatus is the reconciliation state of a donation.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CanTransitionTo reports whether the state machine allows moving from s to next.
// Allowed moves are pending -> paid, pending -> failed and paid -> refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusPaid || next == PaymentStatusFailed
	case PaymentStatusPaid:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// Donation is a gift made through a hosted checkout session.
type Donation struct {
	ID              uuid.UUID         `json:"id"`
	Amount          float64           `json:"amount"`   // Requested amount in major units.
	Currency        string            `json:"currency"` // ISO 4217, lower-case.
	Category        DonationCategory  `json:"category"`
	Frequency       DonationFrequency `json:"frequency"`
	DonorName       string            `json:"donor_name,omitempty"`
	DonorEmail      string            `json:"donor_email,omitempty"`
	DonorPhone      string            `json:"donor_phone,omitempty"`
	Message         string            `json:"message,omitempty"`
	IsAnonymous     bool              `json:"is_anonymous"`
	StripeSessionID string            `json:"stripe_session_id"`           // Set once at creation.
	StripePaymentID string            `json:"stripe_payment_id,omitempty"` // Set on confirmed payment.
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"` // Minor units charged, as reported by the provider.
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// PaymentTransition describes a conditional move between payment states.
// Fields other than From and To are written only when non-zero.
type PaymentTransition struct {
	From            PaymentStatus
	To              PaymentStatus
	StripePaymentID string
	AmountTotal     int64
	Currency        string
	At              time.Time
}
