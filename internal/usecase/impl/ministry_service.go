package impl

import (
	"context"
	"log/slog"
	"time"

	"ministry/config"
	"ministry/internal/domain/lifecycle"
	"ministry/internal/domain/service"
	"ministry/internal/usecase"
	"ministry/internal/util"
)

type ministryService struct {
	cfg       *config.Config
	probe     service.HealthProbe
	startedAt time.Time
	logger    *slog.Logger
}

// NewMinistryService is the constructor for ministryService.
func NewMinistryService(cfg *config.Config, probe service.HealthProbe, logger *slog.Logger) usecase.MinistryUsecase {
	return &ministryService{
		cfg:       cfg,
		probe:     probe,
		startedAt: time.Now(),
		logger:    logger,
	}
}

func (srv *ministryService) Info(_ context.Context) *usecase.MinistryInfo {
	m := srv.cfg.Ministry

	return &usecase.MinistryInfo{
		Name:     m.Name,
		Slogan:   m.Slogan,
		Email:    m.Email,
		Phone:    m.Phone,
		WhatsApp: m.WhatsApp,
		Address:  m.Address,
		Coordinates: usecase.Coordinates{
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		},
		Scripture: m.Scripture,
	}
}

// Health pings the database with a bounded timeout.
func (srv *ministryService) Health(ctx context.Context) *usecase.HealthOutput {
	out := &usecase.HealthOutput{
		Status:   usecase.HealthStatusHealthy,
		Database: usecase.DatabaseConnected,
		Version:  srv.cfg.Env.Version,
		Uptime:   util.FormatDuration(time.Since(srv.startedAt)),
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := srv.probe.Ping(pingCtx); err != nil {
		requestLogger(ctx, srv.logger).Warn("Health check failed", slog.Any("error", err))
		out.Status = usecase.HealthStatusUnhealthy
		out.Database = usecase.DatabaseDisconnected
	}

	return out
}

func (srv *ministryService) Banner(_ context.Context) *usecase.BannerOutput {
	return &usecase.BannerOutput{
		Message: srv.cfg.Ministry.Name + " API",
		Version: srv.cfg.Env.Version,
	}
}
