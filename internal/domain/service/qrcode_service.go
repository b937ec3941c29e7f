package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders QR codes for printed event material.
type QRCodeService interface {
	// GenerateEventQR returns a PNG encoding the public RSVP link of an event.
	GenerateEventQR(eventID uuid.UUID) ([]byte, error)

	// EventRSVPLink returns the URL encoded by GenerateEventQR.
	EventRSVPLink(eventID uuid.UUID) string
}
