package impl

import (
	"context"
	"log/slog"

	"ministry/config"
	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type volunteerService struct {
	volunteerRepo repository.VolunteerRepository
	mail          *transactionalMail
	logger        *slog.Logger
}

// VolunteerServiceParams holds dependencies for VolunteerService, injected by Fx.
type VolunteerServiceParams struct {
	fx.In

	VolunteerRepo repository.VolunteerRepository
	Notifier      service.Notifier
	Config        *config.Config
	Logger        *slog.Logger
}

// NewVolunteerService is the constructor for volunteerService.
func NewVolunteerService(params VolunteerServiceParams) usecase.VolunteerUsecase {
	return &volunteerService{
		volunteerRepo: params.VolunteerRepo,
		mail:          newTransactionalMail(params.Notifier, params.Config, params.Logger),
		logger:        params.Logger,
	}
}

func (srv *volunteerService) Apply(ctx context.Context, input *usecase.VolunteerInput) (*entity.Volunteer, error) {
	volunteer := &entity.Volunteer{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           normalizeEmail(input.Email),
		Phone:           input.Phone,
		AreasOfInterest: stringsOrEmpty(input.AreasOfInterest),
		Availability:    input.Availability,
		Skills:          input.Skills,
		Experience:      input.Experience,
		Motivation:      input.Motivation,
		Status:          entity.VolunteerStatusPending,
	}
	if err := srv.volunteerRepo.Create(ctx, volunteer); err != nil {
		return nil, errors.Wrap(err, "failed to create volunteer application")
	}

	requestLogger(ctx, srv.logger).Info("Volunteer application received", slog.String("volunteer_id", volunteer.ID.String()))

	srv.mail.send(ctx, volunteer.Email, "Thank you for volunteering", mailVolunteerReceived, volunteer)

	return volunteer, nil
}

func (srv *volunteerService) List(ctx context.Context, input *usecase.ListVolunteersInput) (*usecase.Page[entity.Volunteer], error) {
	conditions := optionalEq(nil, "status", input.Status)

	return listPage(ctx, srv.volunteerRepo, input.PageInput, order{column: "created_at", descending: true}, conditions...)
}

func (srv *volunteerService) UpdateStatus(ctx context.Context, id uuid.UUID, input *usecase.UpdateVolunteerInput) (*entity.Volunteer, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.Invalid("status", "must be one of pending, approved, declined")
	}

	volunteer, err := srv.volunteerRepo.UpdateFields(ctx, id, fieldSet{"status": string(input.Status)})
	if err != nil {
		return nil, notFoundAs(err, repository.ErrVolunteerNotFound, domainerrors.ErrVolunteerNotFound)
	}

	return volunteer, nil
}
