package usecase

import (
	"context"
	"time"

	"ministry/internal/domain/entity"
)

// DashboardCounts are the headline totals shown to administrators.
type DashboardCounts struct {
	Users          int64 `json:"users"`
	Sermons        int64 `json:"sermons"`
	Events         int64 `json:"events"`
	PrayerRequests int64 `json:"prayer_requests"`
	Donations      int64 `json:"donations"` // Paid donations only.
}

// RecentUser is a user summary without credentials.
type RecentUser struct {
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// RecentPrayerRequest is a prayer request summary without identity fields.
type RecentPrayerRequest struct {
	RequestText string              `json:"request_text"`
	Status      entity.PrayerStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

// RecentActivity lists the newest records per collection.
type RecentActivity struct {
	Users          []RecentUser          `json:"users"`
	PrayerRequests []RecentPrayerRequest `json:"prayer_requests"`
}

// DashboardOutput is the admin dashboard payload.
type DashboardOutput struct {
	Counts         DashboardCounts `json:"counts"`
	RecentActivity RecentActivity  `json:"recent_activity"`
}

// AdminUsecase serves administrator reporting.
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*DashboardOutput, error)
}
