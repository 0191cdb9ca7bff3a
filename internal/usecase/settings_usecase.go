package usecase

import (
	"context"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// SettingsUpdate is a partial update of a user's notification settings.
// Nil fields keep their stored value.
type SettingsUpdate struct {
	Timezone            *string `json:"timezone"`
	PushEnabled         *bool   `json:"push_enabled"`
	PushFastingWindows  *bool   `json:"push_fasting_windows"`
	PushDailyReminder   *bool   `json:"push_daily_reminder"`
	DailyReminderMinute *int    `json:"daily_reminder_minute"`
}

// FastingUpdate replaces a user's daily eating window.
type FastingUpdate struct {
	EatingStartMinute int `json:"eating_start_minute"`
	EatingHours       int `json:"eating_hours"`
}

// SettingsUsecase defines the interface for notification settings use cases.
// All validation happens here, at the write boundary; the scheduler trusts
// stored rows.
type SettingsUsecase interface {
	// GetSettings retrieves the user's settings, falling back to defaults
	// when no row exists yet.
	GetSettings(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)

	// UpdateSettings applies a partial update and persists the result.
	UpdateSettings(ctx context.Context, userID uuid.UUID, update *SettingsUpdate) (*entity.NotificationSettings, error)

	// GetFastingSchedule retrieves the user's eating window.
	GetFastingSchedule(ctx context.Context, userID uuid.UUID) (*entity.FastingSchedule, error)

	// UpdateFastingSchedule validates and persists a new eating window.
	UpdateFastingSchedule(ctx context.Context, userID uuid.UUID, update *FastingUpdate) (*entity.FastingSchedule, error)
}
