package usecase

import (
	"context"

	"ministry/internal/domain/entity"

	"github.com/google/uuid"
)

// VolunteerInput is an application to serve.
type VolunteerInput struct {
	FirstName       string   `json:"first_name" validate:"required,max=50"`
	LastName        string   `json:"last_name" validate:"required,max=50"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required,max=30"`
	AreasOfInterest []string `json:"areas_of_interest" validate:"required,min=1,max=10,dive,required,max=50"`
	Availability    string   `json:"availability" validate:"required,max=200"`
	Skills          string   `json:"skills" validate:"omitempty,max=1000"`
	Experience      string   `json:"experience" validate:"omitempty,max=1000"`
	Motivation      string   `json:"motivation" validate:"omitempty,max=1000"`
}

// ListVolunteersInput filters volunteer applications.
type ListVolunteersInput struct {
	PageInput
	Status entity.VolunteerStatus `query:"status" validate:"omitempty,oneof=pending approved declined"`
}

// UpdateVolunteerInput records the review decision.
type UpdateVolunteerInput struct {
	Status entity.VolunteerStatus `json:"status" validate:"required,oneof=pending approved declined"`
}

// VolunteerUsecase manages volunteer applications.
type VolunteerUsecase interface {
	Apply(ctx context.Context, input *VolunteerInput) (*entity.Volunteer, error)
	List(ctx context.Context, input *ListVolunteersInput) (*Page[entity.Volunteer], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *UpdateVolunteerInput) (*entity.Volunteer, error)
}
