package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled gathering that members can RSVP to.
type Event struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	Location             string    `json:"location"`
	Latitude             *float64  `json:"latitude,omitempty"`
	Longitude            *float64  `json:"longitude,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	MaxAttendees         *int      `json:"max_attendees,omitempty"` // nil means unlimited.
	RegistrationRequired bool      `json:"registration_required"`
	Category             string    `json:"category"`
	AttendeesCount       int64     `json:"attendees_count"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// HasCoordinates reports whether the event can take part in proximity search.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// RSVPStatus is the state of an attendance reservation.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusCancelled RSVPStatus = "cancelled"
)

// EventRSVP is a reservation for one or more attendees.
type EventRSVP struct {
	ID                uuid.UUID  `json:"id"`
	EventID           uuid.UUID  `json:"event_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	NumberOfAttendees int        `json:"number_of_attendees"`
	Message           string     `json:"message,omitempty"`
	Status            RSVPStatus `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
