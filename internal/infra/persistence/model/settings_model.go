package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSettingsModel mirrors the 'notification_settings' table.
// One row per user holds the timezone and per-reminder toggles.
type NotificationSettingsModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Timezone            string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	PushEnabled         bool      `gorm:"not null;default:false"`
	PushFastingWindows  bool      `gorm:"not null;default:true"`
	PushDailyReminder   bool      `gorm:"not null;default:true"`
	DailyReminderMinute int       `gorm:"not null;default:1200"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationSettingsModel) TableName() string {
	return "notification_settings"
}

// FastingScheduleModel mirrors the 'fasting_schedules' table.
// One row per user describes the recurring daily eating window.
type FastingScheduleModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EatingStartMinute int       `gorm:"not null"`
	EatingHours       int       `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (FastingScheduleModel) TableName() string {
	return "fasting_schedules"
}
