package usecase

import (
	"context"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionInput is the browser Push API subscription handed up by the
// service worker registration.
type SubscriptionInput struct {
	Endpoint  string `json:"endpoint"`
	P256dhKey string `json:"p256dh_key"`
	AuthKey   string `json:"auth_key"`
}

// PushUsecase defines the interface for push subscription use cases.
type PushUsecase interface {
	// Subscribe stores the subscription, atomically replacing any previous
	// one the user had.
	Subscribe(ctx context.Context, userID uuid.UUID, input *SubscriptionInput) (*entity.PushSubscription, error)

	// Unsubscribe removes the user's stored subscription.
	Unsubscribe(ctx context.Context, userID uuid.UUID) error

	// VAPIDPublicKey returns the key clients pass to pushManager.subscribe.
	VAPIDPublicKey() string

	// SendTest delivers a test notification to the user's subscription so
	// they can confirm the pipeline end to end.
	SendTest(ctx context.Context, userID uuid.UUID) error
}
