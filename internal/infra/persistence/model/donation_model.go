package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationModel is the GORM-specific struct for the 'donations' table.
type DonationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Amount          float64   `gorm:"type:numeric(12,2);not null"`
	Currency        string    `gorm:"type:varchar(3);not null"`
	Category        string    `gorm:"type:varchar(50);not null"`
	Frequency       string    `gorm:"type:varchar(20);not null"`
	DonorName       string    `gorm:"type:varchar(255)"`
	DonorEmail      string    `gorm:"type:varchar(255)"`
	DonorPhone      string    `gorm:"type:varchar(50)"`
	Message         string    `gorm:"type:text"`
	IsAnonymous     bool      `gorm:"not null;default:false"`
	StripeSessionID string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	StripePaymentID string    `gorm:"type:varchar(255);index"`
	PaymentStatus   string    `gorm:"type:varchar(20);not null;index"`
	AmountTotal     int64     `gorm:"not null;default:0"`
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (DonationModel) TableName() string {
	return "donations"
}
