package usecase

import (
	"context"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// PrayerRequestInput is a request submitted to the prayer team.
type PrayerRequestInput struct {
	Name                 string `json:"name" validate:"omitempty,max=100"`
	Email                string `json:"email" validate:"omitempty,email"`
	RequestText          string `json:"request_text" validate:"required,min=10,max=2000"`
	IsAnonymous          bool   `json:"is_anonymous"`
	PublicSharingAllowed bool   `json:"public_sharing_allowed"`
}

// ListPrayerRequestsInput filters the prayer team's queue.
type ListPrayerRequestsInput struct {
	PageInput
	Status entity.PrayerStatus `query:"status" validate:"omitempty,oneof=pending praying answered"`
}

// UpdatePrayerRequestInput moves a request through the prayer team's workflow.
type UpdatePrayerRequestInput struct {
	Status    *entity.PrayerStatus `json:"status" validate:"omitempty,oneof=pending praying answered"`
	Testimony *string              `json:"testimony" validate:"omitempty,max=2000"`
}

// PrayerUsecase manages prayer requests.
type PrayerUsecase interface {
	Submit(ctx context.Context, input *PrayerRequestInput) (*entity.PrayerRequest, error)

	// ListPublic returns shared requests with identifying fields removed.
	ListPublic(ctx context.Context, page PageInput) (*Page[entity.PrayerRequest], error)

	List(ctx context.Context, input *ListPrayerRequestsInput) (*Page[entity.PrayerRequest], error)
	Update(ctx context.Context, id uuid.UUID, input *UpdatePrayerRequestInput) (*entity.PrayerRequest, error)
}
