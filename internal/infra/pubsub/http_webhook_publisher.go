package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"disciplined/internal/domain/service"

	"github.com/pkg/errors"
)

// httpWebhookPublisher implements EventPublisher by POSTing day-updated
// events to a configured endpoint, typically the realtime gateway that
// relays refresh hints to open app views.
type httpWebhookPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// webhookEnvelope is the wire format delivered to the endpoint.
type webhookEnvelope struct {
	Type        string                   `json:"type"`
	PublishedAt string                   `json:"published_at"`
	Event       *service.DayUpdatedEvent `json:"event"`
}

// NewHTTPWebhookPublisher creates a new webhook publisher.
func NewHTTPWebhookPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &httpWebhookPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// PublishDayUpdated publishes an event by sending HTTP POST to the endpoint.
func (p *httpWebhookPublisher) PublishDayUpdated(ctx context.Context, event *service.DayUpdatedEvent) error {
	body, err := json.Marshal(webhookEnvelope{
		Type:        "day.updated",
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
		Event:       event,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[Webhook] Publishing day-updated event",
		slog.String("endpoint", p.endpoint),
		slog.String("user_id", event.UserID),
		slog.String("date", event.Date),
		slog.String("pillar", event.Pillar),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *httpWebhookPublisher) Close() error {
	return nil
}
