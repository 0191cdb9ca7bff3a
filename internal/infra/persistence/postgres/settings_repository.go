package postgres

import (
	"context"

	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRepository implements the repository.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// UpsertSettings inserts or updates the user's settings row by user ID.
func (repo *settingsRepository) UpsertSettings(ctx context.Context, settings *entity.NotificationSettings) error {
	settingsM := fromSettingsDomain(settings)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timezone",
				"push_enabled",
				"push_fasting_windows",
				"push_daily_reminder",
				"daily_reminder_minute",
				"updated_at",
			}),
		}).
		Create(settingsM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert notification settings")
	}

	settings.ID = settingsM.ID
	settings.CreatedAt = settingsM.CreatedAt
	settings.UpdatedAt = settingsM.UpdatedAt

	return nil
}

// FindSettingsByUser retrieves the settings row for a user.
func (repo *settingsRepository) FindSettingsByUser(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	var settingsM model.NotificationSettingsModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settingsM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettingsNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification settings by user")
	}

	return toSettingsDomain(&settingsM), nil
}

// ListPushEnabledProfiles returns the notification profile of every user
// with the master push toggle on, fasting schedules joined in.
func (repo *settingsRepository) ListPushEnabledProfiles(ctx context.Context) ([]*repository.NotificationProfile, error) {
	var settingsModels []*model.NotificationSettingsModel

	if err := repo.db.WithContext(ctx).
		Where("push_enabled = ?", true).
		Order("user_id").
		Find(&settingsModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list push-enabled settings")
	}

	if len(settingsModels) == 0 {
		return nil, nil
	}

	userIDs := make([]uuid.UUID, 0, len(settingsModels))
	for _, settingsM := range settingsModels {
		userIDs = append(userIDs, settingsM.UserID)
	}

	var fastingModels []*model.FastingScheduleModel
	if err := repo.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&fastingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list fasting schedules for push-enabled users")
	}

	fastingByUser := make(map[uuid.UUID]*entity.FastingSchedule, len(fastingModels))
	for _, fastingM := range fastingModels {
		fastingByUser[fastingM.UserID] = toFastingDomain(fastingM)
	}

	profiles := make([]*repository.NotificationProfile, 0, len(settingsModels))
	for _, settingsM := range settingsModels {
		profiles = append(profiles, &repository.NotificationProfile{
			Settings: toSettingsDomain(settingsM),
			Fasting:  fastingByUser[settingsM.UserID],
		})
	}

	return profiles, nil
}

// fastingRepository implements the repository.FastingRepository interface.
type fastingRepository struct {
	db *gorm.DB
}

// NewFastingRepository is the constructor for fastingRepository.
func NewFastingRepository(db *gorm.DB) repository.FastingRepository {
	return &fastingRepository{
		db: db,
	}
}

// UpsertSchedule inserts or updates the user's fasting schedule by user ID.
func (repo *fastingRepository) UpsertSchedule(ctx context.Context, sched *entity.FastingSchedule) error {
	schedM := fromFastingDomain(sched)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"eating_start_minute",
				"eating_hours",
				"updated_at",
			}),
		}).
		Create(schedM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert fasting schedule")
	}

	sched.ID = schedM.ID
	sched.CreatedAt = schedM.CreatedAt
	sched.UpdatedAt = schedM.UpdatedAt

	return nil
}

// FindScheduleByUser retrieves the fasting schedule for a user.
func (repo *fastingRepository) FindScheduleByUser(ctx context.Context, userID uuid.UUID) (*entity.FastingSchedule, error) {
	var schedM model.FastingScheduleModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&schedM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFastingScheduleNotFound
		}

		return nil, errors.Wrap(err, "failed to find fasting schedule by user")
	}

	return toFastingDomain(&schedM), nil
}

// toSettingsDomain maps a persistence model to a pure domain entity.
func toSettingsDomain(m *model.NotificationSettingsModel) *entity.NotificationSettings {
	return &entity.NotificationSettings{
		ID:                  m.ID,
		UserID:              m.UserID,
		Timezone:            m.Timezone,
		PushEnabled:         m.PushEnabled,
		PushFastingWindows:  m.PushFastingWindows,
		PushDailyReminder:   m.PushDailyReminder,
		DailyReminderMinute: m.DailyReminderMinute,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// fromSettingsDomain maps a domain entity to a persistence model.
func fromSettingsDomain(s *entity.NotificationSettings) *model.NotificationSettingsModel {
	return &model.NotificationSettingsModel{
		ID:                  s.ID,
		UserID:              s.UserID,
		Timezone:            s.Timezone,
		PushEnabled:         s.PushEnabled,
		PushFastingWindows:  s.PushFastingWindows,
		PushDailyReminder:   s.PushDailyReminder,
		DailyReminderMinute: s.DailyReminderMinute,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// toFastingDomain maps a persistence model to a pure domain entity.
func toFastingDomain(m *model.FastingScheduleModel) *entity.FastingSchedule {
	return &entity.FastingSchedule{
		ID:                m.ID,
		UserID:            m.UserID,
		EatingStartMinute: m.EatingStartMinute,
		EatingHours:       m.EatingHours,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// fromFastingDomain maps a domain entity to a persistence model.
func fromFastingDomain(f *entity.FastingSchedule) *model.FastingScheduleModel {
	return &model.FastingScheduleModel{
		ID:                f.ID,
		UserID:            f.UserID,
		EatingStartMinute: f.EatingStartMinute,
		EatingHours:       f.EatingHours,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}
