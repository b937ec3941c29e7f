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

type prayerService struct {
	prayerRepo repository.PrayerRequestRepository
	mail       *transactionalMail
	logger     *slog.Logger
}

// PrayerServiceParams holds dependencies for PrayerService, injected by Fx.
type PrayerServiceParams struct {
	fx.In

	PrayerRepo repository.PrayerRequestRepository
	Notifier   service.Notifier
	Config     *config.Config
	Logger     *slog.Logger
}

// NewPrayerService is the constructor for prayerService.
func NewPrayerService(params PrayerServiceParams) usecase.PrayerUsecase {
	return &prayerService{
		prayerRepo: params.PrayerRepo,
		mail:       newTransactionalMail(params.Notifier, params.Config, params.Logger),
		logger:     params.Logger,
	}
}

func (srv *prayerService) Submit(ctx context.Context, input *usecase.PrayerRequestInput) (*entity.PrayerRequest, error) {
	prayer := &entity.PrayerRequest{
		Name:                 input.Name,
		Email:                normalizeEmail(input.Email),
		RequestText:          input.RequestText,
		IsAnonymous:          input.IsAnonymous,
		PublicSharingAllowed: input.PublicSharingAllowed,
		Status:               entity.PrayerStatusPending,
	}
	if err := srv.prayerRepo.Create(ctx, prayer); err != nil {
		return nil, errors.Wrap(err, "failed to create prayer request")
	}

	srv.mail.send(ctx, prayer.Email, "Your prayer request has been received", mailPrayerReceived, prayer)

	return prayer, nil
}

func (srv *prayerService) ListPublic(ctx context.Context, page usecase.PageInput) (*usecase.Page[entity.PrayerRequest], error) {
	result, err := listPage(ctx, srv.prayerRepo, page, order{column: "created_at", descending: true},
		repository.Eq("public_sharing_allowed", true),
	)
	if err != nil {
		return nil, err
	}

	for i, prayer := range result.Items {
		result.Items[i] = prayer.Redacted()
	}

	return result, nil
}

func (srv *prayerService) List(ctx context.Context, input *usecase.ListPrayerRequestsInput) (*usecase.Page[entity.PrayerRequest], error) {
	conditions := optionalEq(nil, "status", input.Status)

	return listPage(ctx, srv.prayerRepo, input.PageInput, order{column: "created_at", descending: true}, conditions...)
}

func (srv *prayerService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdatePrayerRequestInput) (*entity.PrayerRequest, error) {
	fields := fieldSet{}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.Invalid("status", "must be one of pending, praying, answered")
		}
		fields["status"] = string(*input.Status)
	}
	setIfPresent(fields, "testimony", input.Testimony)

	prayer, err := srv.prayerRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, notFoundAs(err, repository.ErrPrayerRequestNotFound, domainerrors.ErrPrayerRequestNotFound)
	}

	return prayer, nil
}
