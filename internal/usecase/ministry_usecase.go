package usecase

import "context"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MinistryInfo is the public contact record.
type MinistryInfo struct {
	Name        string      `json:"name"`
	Slogan      string      `json:"slogan"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	WhatsApp    string      `json:"whatsapp"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Scripture   string      `json:"scripture"`
}

// Health statuses.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// HealthOutput reports readiness including storage connectivity.
type HealthOutput struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
}

// Healthy reports whether the service can serve traffic.
func (h *HealthOutput) Healthy() bool {
	return h.Status == HealthStatusHealthy
}

// BannerOutput is the API root response.
type BannerOutput struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// MinistryUsecase serves static ministry information and service health.
type MinistryUsecase interface {
	Info(ctx context.Context) *MinistryInfo
	Health(ctx context.Context) *HealthOutput
	Banner(ctx context.Context) *BannerOutput
}
