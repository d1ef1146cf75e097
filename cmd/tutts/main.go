package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/middleware"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/router/handler"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/audit"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/geo"
	logs "github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/log"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/persistence/postgres"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/infra/pubsub"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase/impl"

	"go.uber.org/fx"
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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewHubRepository,
			postgres.NewBindingRepository,
			postgres.NewQueueRepository,
			postgres.NewHistoryRepository,
			postgres.NewNotificationRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			geo.NewGeofenceValidator,
			audit.NewSlogSink,
		),
		pubsub.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewHubService,
			impl.NewBindingService,
			impl.NewQueueService,
			impl.NewHistoryService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHubHandler,
			handler.NewBindingHandler,
			handler.NewQueueHandler,
			handler.NewProfessionalHandler,
			handler.NewHistoryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
