package repository

import (
	"context"
	"errors"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for settings persistence.
var (
	// ErrSettingsNotFound is returned when a user has no notification settings row.
	ErrSettingsNotFound = errors.New("notification settings not found")
	// ErrFastingScheduleNotFound is returned when a user has no fasting schedule.
	ErrFastingScheduleNotFound = errors.New("fasting schedule not found")
)

// NotificationProfile is a settings row joined with the user's fasting
// schedule, as read by the reminder scheduler in one pass. Fasting is nil
// when the user never configured an eating window.
type NotificationProfile struct {
	Settings *entity.NotificationSettings
	Fasting  *entity.FastingSchedule
}

// SettingsRepository defines the interface for notification settings persistence.
type SettingsRepository interface {
	// UpsertSettings inserts or updates the user's settings row by user ID.
	UpsertSettings(ctx context.Context, settings *entity.NotificationSettings) error

	// FindSettingsByUser retrieves the settings row for a user.
	FindSettingsByUser(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)

	// ListPushEnabledProfiles returns the notification profile of every user
	// with the master push toggle on, fasting schedules joined in.
	ListPushEnabledProfiles(ctx context.Context) ([]*NotificationProfile, error)
}

// FastingRepository defines the interface for fasting schedule persistence.
type FastingRepository interface {
	// UpsertSchedule inserts or updates the user's fasting schedule by user ID.
	UpsertSchedule(ctx context.Context, sched *entity.FastingSchedule) error

	// FindScheduleByUser retrieves the fasting schedule for a user.
	FindScheduleByUser(ctx context.Context, userID uuid.UUID) (*entity.FastingSchedule, error)
}
