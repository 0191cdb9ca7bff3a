package impl

import (
	"context"

	"disciplined/config"
	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/service"
	"disciplined/internal/errors"
	"disciplined/internal/usecase"

	"github.com/google/uuid"
)

type pushService struct {
	subscriptionRepo repository.PushSubscriptionRepository
	txManager        repository.TransactionManager
	transport        service.PushTransport
	appBaseURL       string
}

// NewPushService creates a new push service instance
func NewPushService(
	subscriptionRepo repository.PushSubscriptionRepository,
	txManager repository.TransactionManager,
	transport service.PushTransport,
	cfg *config.Config,
) usecase.PushUsecase {
	baseURL := ""
	if cfg.App != nil {
		baseURL = cfg.App.BaseURL
	}

	return &pushService{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		transport:        transport,
		appBaseURL:       baseURL,
	}
}

// Subscribe stores the subscription, atomically replacing any previous one
// the user had. Delete plus insert run in one transaction so a crash can't
// leave the user with zero or two rows.
func (s *pushService) Subscribe(ctx context.Context, userID uuid.UUID, input *usecase.SubscriptionInput) (*entity.PushSubscription, error) {
	if input.Endpoint == "" || input.P256dhKey == "" || input.AuthKey == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("endpoint, p256dh_key and auth_key are required")
	}

	sub := &entity.PushSubscription{
		UserID:    userID,
		Endpoint:  input.Endpoint,
		P256dhKey: input.P256dhKey,
		AuthKey:   input.AuthKey,
	}

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.Subscriptions().DeleteSubscriptionsByUser(ctx, userID); err != nil {
			return err
		}

		return repos.Subscriptions().CreateSubscription(ctx, sub)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to replace push subscription")
	}

	return sub, nil
}

// Unsubscribe removes the user's stored subscription.
func (s *pushService) Unsubscribe(ctx context.Context, userID uuid.UUID) error {
	if err := s.subscriptionRepo.DeleteSubscriptionsByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete push subscription")
	}

	return nil
}

// VAPIDPublicKey returns the key clients pass to pushManager.subscribe.
func (s *pushService) VAPIDPublicKey() string {
	return s.transport.PublicKey()
}

// SendTest delivers a test notification to the user's subscription.
func (s *pushService) SendTest(ctx context.Context, userID uuid.UUID) error {
	sub, err := s.subscriptionRepo.FindSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return domainerrors.ErrSubscriptionNotFound
		}

		return errors.Wrap(err, "failed to find push subscription")
	}

	msg := service.NewPushMessage("Disciplined Life", "Push notifications are working.", s.appBaseURL)

	if err := s.transport.Send(ctx, sub, msg); err != nil {
		if errors.Is(err, service.ErrEndpointGone) {
			// The browser dropped this subscription; clear it so the client
			// knows to re-subscribe.
			if delErr := s.subscriptionRepo.DeleteSubscriptionsByUser(ctx, userID); delErr != nil {
				return errors.Wrap(delErr, "failed to delete gone subscription")
			}

			return domainerrors.ErrSubscriptionNotFound
		}

		return errors.Wrap(err, "failed to send test notification")
	}

	return nil
}
