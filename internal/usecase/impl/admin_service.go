package impl

import (
	"context"
	"log/slog"

	"ministry/internal/domain/entity"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 5

type adminService struct {
	userRepo     repository.UserRepository
	sermonRepo   repository.SermonRepository
	eventRepo    repository.EventRepository
	prayerRepo   repository.PrayerRequestRepository
	donationRepo repository.DonationRepository
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	SermonRepo   repository.SermonRepository
	EventRepo    repository.EventRepository
	PrayerRepo   repository.PrayerRequestRepository
	DonationRepo repository.DonationRepository
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:     params.UserRepo,
		sermonRepo:   params.SermonRepo,
		eventRepo:    params.EventRepo,
		prayerRepo:   params.PrayerRepo,
		donationRepo: params.DonationRepo,
		logger:       params.Logger,
	}
}

// Dashboard runs every count and recent-activity query concurrently.
func (srv *adminService) Dashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	var (
		out     usecase.DashboardOutput
		users   []*entity.User
		prayers []*entity.PrayerRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Counts.Users, err = srv.userRepo.Count(gctx)

		return errors.Wrap(err, "count users")
	})
	g.Go(func() (err error) {
		out.Counts.Sermons, err = srv.sermonRepo.Count(gctx)

		return errors.Wrap(err, "count sermons")
	})
	g.Go(func() (err error) {
		out.Counts.Events, err = srv.eventRepo.Count(gctx)

		return errors.Wrap(err, "count events")
	})
	g.Go(func() (err error) {
		out.Counts.PrayerRequests, err = srv.prayerRepo.Count(gctx)

		return errors.Wrap(err, "count prayer requests")
	})
	g.Go(func() (err error) {
		out.Counts.Donations, err = srv.donationRepo.Count(gctx, repository.Eq("payment_status", string(entity.PaymentStatusPaid)))

		return errors.Wrap(err, "count paid donations")
	})
	g.Go(func() (err error) {
		users, err = srv.userRepo.ListRecent(gctx, recentActivityLimit)

		return errors.Wrap(err, "list recent users")
	})
	g.Go(func() (err error) {
		prayers, err = srv.prayerRepo.List(gctx, repository.ListQuery{
			OrderBy:    "created_at",
			Descending: true,
			Limit:      recentActivityLimit,
		})

		return errors.Wrap(err, "list recent prayer requests")
	})

	if err := g.Wait(); err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to build admin dashboard", slog.Any("error", err))

		return nil, err
	}

	out.RecentActivity.Users = make([]usecase.RecentUser, 0, len(users))
	for _, user := range users {
		out.RecentActivity.Users = append(out.RecentActivity.Users, usecase.RecentUser{
			Email:     user.Email,
			FullName:  user.FullName,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	out.RecentActivity.PrayerRequests = make([]usecase.RecentPrayerRequest, 0, len(prayers))
	for _, prayer := range prayers {
		out.RecentActivity.PrayerRequests = append(out.RecentActivity.PrayerRequests, usecase.RecentPrayerRequest{
			RequestText: prayer.RequestText,
			Status:      prayer.Status,
			CreatedAt:   prayer.CreatedAt,
		})
	}

	return &out, nil
}
