// Package pubsub publishes day-updated events to an optional refresh webhook.
package pubsub

import (
	"context"
	"log/slog"

	"disciplined/config"
	"disciplined/internal/domain/service"

	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when no webhook is configured
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishDayUpdated(ctx context.Context, event *service.DayUpdatedEvent) error {
	p.logger.Debug("[NoopPublisher] Event publishing disabled, skipping",
		slog.String("user_id", event.UserID),
		slog.String("pillar", event.Pillar),
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
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	logger := params.Logger

	// Without a configured webhook endpoint, events are dropped.
	if params.Config.Refresh == nil || params.Config.Refresh.Endpoint == "" {
		logger.Info("Refresh webhook not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	logger.Info("Using HTTP webhook publisher for day-updated events",
		slog.String("endpoint", params.Config.Refresh.Endpoint),
	)

	publisher := NewHTTPWebhookPublisher(params.Config.Refresh.Endpoint, logger)

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the event publisher FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
