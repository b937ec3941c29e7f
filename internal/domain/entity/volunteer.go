package entity

import (
	"time"

	"github.com/google/uuid"
)

// VolunteerStatus is the review state of a volunteer application.
type VolunteerStatus string

const (
	VolunteerStatusPending  VolunteerStatus = "pending"
	VolunteerStatusApproved VolunteerStatus = "approved"
	VolunteerStatusDeclined VolunteerStatus = "declined"
)

// IsValid reports whether s is a known review state.
func (s VolunteerStatus) IsValid() bool {
	switch s {
	case VolunteerStatusPending, VolunteerStatusApproved, VolunteerStatusDeclined:
		return true
	default:
		return false
	}
}

// Volunteer is an application to serve in one or more ministry areas.
type Volunteer struct {
	ID              uuid.UUID       `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	AreasOfInterest []string        `json:"areas_of_interest"`
	Availability    string          `json:"availability"`
	Skills          string          `json:"skills,omitempty"`
	Experience      string          `json:"experience,omitempty"`
	Motivation      string          `json:"motivation,omitempty"`
	Status          VolunteerStatus `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
