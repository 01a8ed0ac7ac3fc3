package main

import (
	"context"
	"log/slog"
	"os"

	"funntour/config"
	"funntour/internal/delivery"
	"funntour/internal/delivery/api"
	apimiddleware "funntour/internal/delivery/api/middleware"
	"funntour/internal/delivery/api/router/handler"
	"funntour/internal/domain/repository"
	"funntour/internal/domain/service"
	"funntour/internal/infra/auth"
	"funntour/internal/infra/cache/redis"
	logs "funntour/internal/infra/log"
	"funntour/internal/infra/metrics"
	"funntour/internal/infra/notification"
	"funntour/internal/infra/persistence/postgres"
	"funntour/internal/infra/pubsub"
	"funntour/internal/infra/storage"
	"funntour/internal/usecase/impl"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
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
		redis.New,
		fx.Annotate(
			metrics.NewDefault,
			fx.As(fx.Self()),
			fx.As(new(service.ResetTokenMetrics)),
		),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			newResetTokenStore,
		),
	)
}

// newResetTokenStore keeps consumed reset tokens in Redis when it is configured, otherwise in Postgres.
func newResetTokenStore(client *goredis.Client, db *gorm.DB, logger *slog.Logger) repository.ResetTokenStore {
	if client != nil {
		logger.Info("Reset token replay store: redis")

		return redis.NewResetTokenStore(client)
	}

	logger.Info("Reset token replay store: postgres")

	return postgres.NewResetTokenStore(db)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			newJWTService,
			newResetTokenService,
			notification.NewEmailSender,
			notification.NewWhatsAppSender,
			notification.NewDispatcher,
			pubsub.NewEventPublisher,
			storage.NewAvatarStorage,
		),
	)
}

func newJWTService(cfg *config.Config) (service.TokenService, error) {
	return auth.NewJWTService(cfg)
}

func newResetTokenService(cfg *config.Config) (service.ResetTokenService, error) {
	return auth.NewResetTokenService(cfg)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCountryService,
			impl.NewStateService,
			impl.NewCityService,
			impl.NewAddressService,
			impl.NewProfileService,
			impl.NewUserService,
			impl.NewPasswordResetService,
			impl.NewAccountAuditService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewCountryHandler,
			handler.NewStateHandler,
			handler.NewCityHandler,
			handler.NewAddressHandler,
			handler.NewProfileHandler,
			handler.NewUserHandler,
			handler.NewAuthHandler,
			handler.NewAccountEventHandler,
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

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
