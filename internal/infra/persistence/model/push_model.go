package model

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscriptionModel mirrors the 'push_subscriptions' table. The store
// allows one row per user; resubscribing replaces the old row in a
// transaction.
type PushSubscriptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Endpoint  string    `gorm:"type:text;not null"`
	P256dhKey string    `gorm:"type:text;not null"`
	AuthKey   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}

// NotificationSendLogModel mirrors the 'notification_send_logs' table.
// The unique (user_id, kind, local_date) key is what makes scheduler runs
// idempotent.
type NotificationSendLogModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_send_logs_user_kind_date"`
	Kind        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_send_logs_user_kind_date"`
	LocalDate   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_send_logs_user_kind_date"`
	LocalMinute int       `gorm:"not null"`
	SentAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationSendLogModel) TableName() string {
	return "notification_send_logs"
}
