package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrayerStatus tracks how the prayer team has handled a request.
type PrayerStatus string

const (
	PrayerStatusPending  PrayerStatus = "pending"
	PrayerStatusPraying  PrayerStatus = "praying"
	PrayerStatusAnswered PrayerStatus = "answered"
)

// IsValid reports whether s is a known prayer status.
func (s PrayerStatus) IsValid() bool {
	switch s {
	case PrayerStatusPending, PrayerStatusPraying, PrayerStatusAnswered:
		return true
	default:
		return false
	}
}

// PrayerRequest is a request submitted to the prayer team.
type PrayerRequest struct {
	ID                   uuid.UUID    `json:"id"`
	Name                 string       `json:"name,omitempty"`
	Email                string       `json:"email,omitempty"`
	RequestText          string       `json:"request_text"`
	IsAnonymous          bool         `json:"is_anonymous"`
	PublicSharingAllowed bool         `json:"public_sharing_allowed"`
	Status               PrayerStatus `json:"status"`
	Testimony            string       `json:"testimony,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Redacted returns a copy safe for the public prayer wall.
func (p *PrayerRequest) Redacted() *PrayerRequest {
	out := *p
	out.Email = ""
	if out.IsAnonymous {
		out.Name = ""
	}

	return &out
}
