package entity

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription is a browser Push API subscription. A user has at most
// one active subscription; resubscribing replaces it.
type PushSubscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Endpoint  string    `json:"endpoint"`   // Push service URL for this browser.
	P256dhKey string    `json:"p256dh_key"` // Client public key for payload encryption.
	AuthKey   string    `json:"auth_key"`   // Client auth secret.
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSendLog is the append-only idempotence ledger. The presence of
// a row for (user, kind, local date) means that trigger already fired that
// day and must not fire again.
type NotificationSendLog struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Kind        string    `json:"kind"`         // Trigger kind, minute-qualified for window triggers.
	LocalDate   string    `json:"local_date"`   // Calendar date in the user's timezone.
	LocalMinute int       `json:"local_minute"` // Minute-of-day the trigger fired at.
	SentAt      time.Time `json:"sent_at"`
}
