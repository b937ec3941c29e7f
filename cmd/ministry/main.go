package main

import (
	"context"
	"log/slog"
	"os"

	"ministry/config"
	"ministry/internal/delivery"
	"ministry/internal/delivery/api"
	apimiddleware "ministry/internal/delivery/api/middleware"
	"ministry/internal/delivery/api/router/handler"
	"ministry/internal/infra/auth"
	"ministry/internal/infra/cache/redis"
	logs "ministry/internal/infra/log"
	"ministry/internal/infra/mail"
	"ministry/internal/infra/notification"
	"ministry/internal/infra/payment"
	"ministry/internal/infra/persistence/postgres"
	"ministry/internal/infra/pubsub"
	"ministry/internal/infra/qrcode"
	"ministry/internal/infra/storage"
	"ministry/internal/usecase"
	"ministry/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type bootstrapParams struct {
	fx.In
	fx.Lifecycle

	Migrate postgres.MigrateParams
	AuthUC  usecase.AuthUsecase
	Logger  *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			bootstrap,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redis.NewClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewSermonRepository,
			postgres.NewEventRepository,
			postgres.NewRSVPRepository,
			postgres.NewPrayerRequestRepository,
			postgres.NewVolunteerRepository,
			postgres.NewResourceRepository,
			postgres.NewLiveStreamRepository,
			postgres.NewChatMessageRepository,
			postgres.NewBlogPostRepository,
			postgres.NewDonationRepository,
			postgres.NewHealthProbe,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			redis.NewTokenRevoker,
			redis.NewRateLimiter,
			mail.NewMailer,
			notification.NewNotifier,
			payment.NewStripeGateway,
			storage.New,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewMinistryService,
			impl.NewSermonService,
			impl.NewEventService,
			impl.NewPrayerService,
			impl.NewVolunteerService,
			impl.NewDonationService,
			impl.NewBlogService,
			impl.NewResourceService,
			impl.NewLiveStreamService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMinistryHandler,
			handler.NewAuthHandler,
			handler.NewSermonHandler,
			handler.NewEventHandler,
			handler.NewPrayerHandler,
			handler.NewVolunteerHandler,
			handler.NewDonationHandler,
			handler.NewBlogHandler,
			handler.NewResourceHandler,
			handler.NewLiveStreamHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrap migrates the schema and seeds the administrator once the database is reachable.
func bootstrap(params bootstrapParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postgres.Migrate(params.Migrate); err != nil {
				return err
			}

			if err := params.AuthUC.EnsureAdmin(ctx); err != nil {
				params.Logger.Error("Failed to create bootstrap administrator", slog.Any("error", err))
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
