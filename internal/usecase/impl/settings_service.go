package impl

import (
	"context"
	"time"

	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/schedule"
	"disciplined/internal/errors"
	"disciplined/internal/usecase"

	"github.com/google/uuid"
)

// Defaults applied when a user has never saved settings: UTC, reminders on,
// daily reminder at 20:00 local.
const (
	defaultTimezone            = "UTC"
	defaultDailyReminderMinute = 20 * 60
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	fastingRepo  repository.FastingRepository
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	fastingRepo repository.FastingRepository,
) usecase.SettingsUsecase {
	return &settingsService{
		settingsRepo: settingsRepo,
		fastingRepo:  fastingRepo,
	}
}

// GetSettings retrieves the user's settings, falling back to defaults when
// no row exists yet.
func (s *settingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	settings, err := s.settingsRepo.FindSettingsByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return defaultSettings(userID), nil
		}

		return nil, errors.Wrap(err, "failed to find settings")
	}

	return settings, nil
}

// UpdateSettings applies a partial update and persists the result. The
// scheduler trusts stored rows, so everything is validated here.
func (s *settingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, update *usecase.SettingsUpdate) (*entity.NotificationSettings, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Timezone != nil {
		if _, err := time.LoadLocation(*update.Timezone); err != nil || *update.Timezone == "" {
			return nil, domainerrors.ErrInvalidTimezone.WithDetails(*update.Timezone)
		}
		settings.Timezone = *update.Timezone
	}
	if update.PushEnabled != nil {
		settings.PushEnabled = *update.PushEnabled
	}
	if update.PushFastingWindows != nil {
		settings.PushFastingWindows = *update.PushFastingWindows
	}
	if update.PushDailyReminder != nil {
		settings.PushDailyReminder = *update.PushDailyReminder
	}
	if update.DailyReminderMinute != nil {
		if *update.DailyReminderMinute < 0 || *update.DailyReminderMinute >= schedule.MinutesPerDay {
			return nil, domainerrors.ErrInvalidReminderTime
		}
		settings.DailyReminderMinute = *update.DailyReminderMinute
	}

	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		return nil, errors.Wrap(err, "failed to upsert settings")
	}

	return settings, nil
}

// GetFastingSchedule retrieves the user's eating window.
func (s *settingsService) GetFastingSchedule(ctx context.Context, userID uuid.UUID) (*entity.FastingSchedule, error) {
	sched, err := s.fastingRepo.FindScheduleByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrFastingScheduleNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("no fasting schedule configured")
		}

		return nil, errors.Wrap(err, "failed to find fasting schedule")
	}

	return sched, nil
}

// UpdateFastingSchedule validates and persists a new eating window.
func (s *settingsService) UpdateFastingSchedule(ctx context.Context, userID uuid.UUID, update *usecase.FastingUpdate) (*entity.FastingSchedule, error) {
	sched := &entity.FastingSchedule{
		UserID:            userID,
		EatingStartMinute: update.EatingStartMinute,
		EatingHours:       update.EatingHours,
	}

	if err := sched.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidFastingWindow.WithDetails(err.Error())
	}

	if err := s.fastingRepo.UpsertSchedule(ctx, sched); err != nil {
		return nil, errors.Wrap(err, "failed to upsert fasting schedule")
	}

	return sched, nil
}

func defaultSettings(userID uuid.UUID) *entity.NotificationSettings {
	return &entity.NotificationSettings{
		UserID:              userID,
		Timezone:            defaultTimezone,
		PushEnabled:         false,
		PushFastingWindows:  true,
		PushDailyReminder:   true,
		DailyReminderMinute: defaultDailyReminderMinute,
	}
}
