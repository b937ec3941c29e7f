package usecase

import (
	"context"
	"time"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// ListEventsInput filters the event calendar. When Latitude and Longitude are
// both set, only events within RadiusKM of that point are returned.
type ListEventsInput struct {
	PageInput
	Category  string   `query:"category"`
	Upcoming  bool     `query:"upcoming"`
	Latitude  *float64 `query:"lat" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `query:"lng" validate:"omitempty,gte=-180,lte=180"`
	RadiusKM  float64  `query:"radius_km" validate:"gte=0,lte=20000"`
}

// CreateEventInput defines a new event.
type CreateEventInput struct {
	Title                string    `json:"title" validate:"required,max=200"`
	Description          string    `json:"description" validate:"required,max=5000"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	Location             string    `json:"location" validate:"required,max=200"`
	Latitude             *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude            *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ImageURL             string    `json:"image_url" validate:"omitempty,url"`
	MaxAttendees         *int      `json:"max_attendees" validate:"omitempty,gte=1"`
	RegistrationRequired bool      `json:"registration_required"`
	Category             string    `json:"category" validate:"required,max=50"`
}

// UpdateEventInput is a partial event update; nil fields are left unchanged.
type UpdateEventInput struct {
	Title                *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description          *string    `json:"description" validate:"omitempty,max=5000"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	Location             *string    `json:"location" validate:"omitempty,min=1,max=200"`
	Latitude             *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude            *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ImageURL             *string    `json:"image_url" validate:"omitempty,url"`
	MaxAttendees         *int       `json:"max_attendees" validate:"omitempty,gte=1"`
	RegistrationRequired *bool      `json:"registration_required"`
	Category             *string    `json:"category" validate:"omitempty,min=1,max=50"`
}

// RSVPInput reserves places at an event.
type RSVPInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"omitempty,max=30"`
	NumberOfAttendees *int   `json:"number_of_attendees" validate:"omitempty,gte=1,lte=100"`
	Message           string `json:"message" validate:"omitempty,max=1000"`
}

// EventUsecase manages events and their reservations.
type EventUsecase interface {
	List(ctx context.Context, input *ListEventsInput) (*Page[entity.Event], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Create(ctx context.Context, input *CreateEventInput) (*entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateEventInput) (*entity.Event, error)

	// RSVP records a reservation and atomically adds its attendees to the event.
	RSVP(ctx context.Context, eventID uuid.UUID, input *RSVPInput) (*entity.EventRSVP, error)

	ListRSVPs(ctx context.Context, eventID uuid.UUID, page PageInput) (*Page[entity.EventRSVP], error)

	// QRCode returns a PNG linking to the event's RSVP page.
	QRCode(ctx context.Context, eventID uuid.UUID) ([]byte, error)
}
