// Package pubsub publishes queue transition events to external subscribers.
package pubsub

import (
	"context"
	"log/slog"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/constants"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher is wired when no provider is configured; queue events then
// stay in-process only.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishQueueEvent(_ context.Context, event *service.QueueEvent) error {
	p.logger.Debug("queue event dropped, publishing disabled",
		slog.String("event_id", event.EventID),
		slog.String("action", event.Action),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher selects the event publisher from configuration and ties
// its shutdown to the fx lifecycle.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := buildPublisher(params.Ctx, params.Config.PubSub, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("closing event publisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func buildPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" {
		logger.Info("pubsub not configured, queue events use no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("queue events go to local HTTP endpoint",
			slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("project ID and topic ID are required for google provider")
		}
		logger.Info("queue events go to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID))

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
