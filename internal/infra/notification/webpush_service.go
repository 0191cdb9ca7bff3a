// Package notification implements the Web Push delivery transport.
package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"

	"disciplined/config"
	"disciplined/internal/domain/entity"
	"disciplined/internal/domain/service"
)

// webpushService sends notifications over the browser Push API, signed with
// the server's VAPID key pair.
type webpushService struct {
	subscriber string
	publicKey  string
	privateKey string
	ttl        int
}

// NewWebPushService creates a new Web Push transport instance.
func NewWebPushService(cfg *config.Config) (service.PushTransport, error) {
	if cfg.Push == nil || cfg.Push.VAPIDPublicKey == "" || cfg.Push.VAPIDPrivateKey == "" {
		return nil, errors.New("vapid keys must be provided")
	}

	return &webpushService{
		subscriber: cfg.Push.Subscriber,
		publicKey:  cfg.Push.VAPIDPublicKey,
		privateKey: cfg.Push.VAPIDPrivateKey,
		ttl:        cfg.Push.TTL,
	}, nil
}

// Send delivers the message to the subscription's endpoint.
func (s *webpushService) Send(ctx context.Context, sub *entity.PushSubscription, msg *service.PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal push payload")
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send push notification")
	}
	defer resp.Body.Close()

	// 410 Gone or 404 means the subscription no longer exists at the push
	// service and should be deleted from the store.
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		return service.ErrEndpointGone
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("push service returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// PublicKey returns the VAPID public key clients subscribe with.
func (s *webpushService) PublicKey() string {
	return s.publicKey
}
