package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSettings holds a user's notification profile: their timezone,
// which push reminders are enabled, and when the daily reminder fires.
// Times of day are stored as minutes since local midnight (0..1439).
type NotificationSettings struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	Timezone            string    `json:"timezone"`               // IANA zone name, e.g. "America/Chicago".
	PushEnabled         bool      `json:"push_enabled"`           // Master toggle for all push notifications.
	PushFastingWindows  bool      `json:"push_fasting_windows"`   // Eating-window open/close reminders.
	PushDailyReminder   bool      `json:"push_daily_reminder"`    // End-of-day incomplete-pillars reminder.
	DailyReminderMinute int       `json:"daily_reminder_minute"`  // Minutes since local midnight.
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Location resolves the user's IANA timezone.
func (s *NotificationSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}
