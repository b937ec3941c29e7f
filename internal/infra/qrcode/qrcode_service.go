package qrcode

import (
	"fmt"
	"strings"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize         = 256
	defaultRecoveryCode = "M"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService builds the service from the optional qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return newQRCodeService(defaultSize, defaultRecoveryCode, cfg.Stripe.FrontendURL)
	}

	baseURL := cfg.QRCode.BaseURL
	if baseURL == "" {
		baseURL = cfg.Stripe.FrontendURL
	}

	return newQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, baseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// EventRSVPLink returns the public RSVP page for an event.
func (s *qrcodeService) EventRSVPLink(eventID uuid.UUID) string {
	return fmt.Sprintf("%s/events/%s/rsvp", s.baseURL, eventID)
}

// GenerateEventQR encodes the RSVP link as a PNG.
func (s *qrcodeService) GenerateEventQR(eventID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.EventRSVPLink(eventID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
