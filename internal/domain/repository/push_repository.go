package repository

import (
	"context"
	"errors"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for push persistence.
var (
	// ErrSubscriptionNotFound is returned when a user has no push subscription.
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	// ErrDuplicateSendLog is returned when the (user, kind, local date) log
	// row already exists. Callers treat this as "already sent".
	ErrDuplicateSendLog = errors.New("send log entry already exists")
)

// PushSubscriptionRepository defines the interface for push subscription persistence.
// The store enforces one active subscription per user.
type PushSubscriptionRepository interface {
	// CreateSubscription persists a subscription for a user. Callers replace
	// rather than accumulate: delete the old row first (see TransactionManager).
	CreateSubscription(ctx context.Context, sub *entity.PushSubscription) error

	// FindSubscriptionByUser retrieves the user's active subscription.
	FindSubscriptionByUser(ctx context.Context, userID uuid.UUID) (*entity.PushSubscription, error)

	// DeleteSubscriptionsByUser removes all subscriptions for a user.
	DeleteSubscriptionsByUser(ctx context.Context, userID uuid.UUID) error
}

// SendLogRepository defines the interface for the notification send log.
type SendLogRepository interface {
	// SendLogExists reports whether a row exists for (user, kind, local date).
	SendLogExists(ctx context.Context, userID uuid.UUID, kind, localDate string) (bool, error)

	// CreateSendLog appends a ledger row. Returns ErrDuplicateSendLog when
	// the unique (user, kind, local date) key already exists.
	CreateSendLog(ctx context.Context, log *entity.NotificationSendLog) error
}
