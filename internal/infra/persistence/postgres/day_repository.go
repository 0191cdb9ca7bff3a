package postgres

import (
	"context"
	"time"

	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dayRepository implements the repository.DayRepository interface.
type dayRepository struct {
	db *gorm.DB
}

// NewDayRepository is the constructor for dayRepository.
func NewDayRepository(db *gorm.DB) repository.DayRepository {
	return &dayRepository{
		db: db,
	}
}

// CreateDay persists a new day record. Concurrent creates for the same
// (user, date) surface as ErrDuplicateDay so callers can refetch.
func (repo *dayRepository) CreateDay(ctx context.Context, day *entity.DayRecord) error {
	dayM := fromDayDomain(day)

	if err := repo.db.WithContext(ctx).Create(dayM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateDay
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create day record")
	}

	day.ID = dayM.ID
	day.CreatedAt = dayM.CreatedAt

	return nil
}

// FindDay retrieves the day record for a user and date key.
func (repo *dayRepository) FindDay(ctx context.Context, userID uuid.UUID, date string) (*entity.DayRecord, error) {
	var dayM model.DayRecordModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&dayM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDayNotFound
		}

		return nil, errors.Wrap(err, "failed to find day record")
	}

	return toDayDomain(&dayM), nil
}

// SeedCompletion inserts a pillar completion row if none exists for
// (day, pillar). An existing row is left untouched.
func (repo *dayRepository) SeedCompletion(ctx context.Context, completion *entity.PillarCompletion) error {
	completionM := fromCompletionDomain(completion)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day_id"}, {Name: "pillar"}},
			DoNothing: true,
		}).
		Create(completionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to seed pillar completion")
	}

	return nil
}

// FindCompletion retrieves the completion row for a day and pillar.
func (repo *dayRepository) FindCompletion(ctx context.Context, dayID uuid.UUID, pillar entity.Pillar) (*entity.PillarCompletion, error) {
	var completionM model.PillarCompletionModel

	if err := repo.db.WithContext(ctx).
		Where("day_id = ? AND pillar = ?", dayID, string(pillar)).
		First(&completionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompletionNotFound
		}

		return nil, errors.Wrap(err, "failed to find pillar completion")
	}

	return toCompletionDomain(&completionM), nil
}

// ListCompletions retrieves all completion rows for a day.
func (repo *dayRepository) ListCompletions(ctx context.Context, dayID uuid.UUID) ([]*entity.PillarCompletion, error) {
	var completionModels []*model.PillarCompletionModel

	if err := repo.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("pillar").
		Find(&completionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pillar completions")
	}

	completions := make([]*entity.PillarCompletion, 0, len(completionModels))
	for _, completionM := range completionModels {
		completions = append(completions, toCompletionDomain(completionM))
	}

	return completions, nil
}

// UpdateCompletion sets the completed flag and source of a completion row.
func (repo *dayRepository) UpdateCompletion(ctx context.Context, completionID uuid.UUID, completed bool, source entity.CompletionSource) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PillarCompletionModel{}).
		Where("id = ?", completionID).
		Updates(map[string]any{
			"completed":  completed,
			"source":     string(source),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update pillar completion")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCompletionNotFound
	}

	return nil
}

// ListDaysInRange retrieves a user's day records with completions for date
// keys in [from, to], newest first.
func (repo *dayRepository) ListDaysInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*repository.DayWithCompletions, error) {
	var dayModels []*model.DayRecordModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&dayModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list day records in range")
	}

	if len(dayModels) == 0 {
		return nil, nil
	}

	dayIDs := make([]uuid.UUID, 0, len(dayModels))
	for _, dayM := range dayModels {
		dayIDs = append(dayIDs, dayM.ID)
	}

	var completionModels []*model.PillarCompletionModel
	if err := repo.db.WithContext(ctx).
		Where("day_id IN ?", dayIDs).
		Find(&completionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list completions for day range")
	}

	completionsByDay := make(map[uuid.UUID][]*entity.PillarCompletion, len(dayModels))
	for _, completionM := range completionModels {
		completionsByDay[completionM.DayID] = append(completionsByDay[completionM.DayID], toCompletionDomain(completionM))
	}

	days := make([]*repository.DayWithCompletions, 0, len(dayModels))
	for _, dayM := range dayModels {
		days = append(days, &repository.DayWithCompletions{
			Day:         toDayDomain(dayM),
			Completions: completionsByDay[dayM.ID],
		})
	}

	return days, nil
}

// toDayDomain maps a persistence model to a pure domain entity.
func toDayDomain(m *model.DayRecordModel) *entity.DayRecord {
	return &entity.DayRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
}

// fromDayDomain maps a domain entity to a persistence model.
func fromDayDomain(d *entity.DayRecord) *model.DayRecordModel {
	return &model.DayRecordModel{
		ID:        d.ID,
		UserID:    d.UserID,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}

// toCompletionDomain maps a persistence model to a pure domain entity.
func toCompletionDomain(m *model.PillarCompletionModel) *entity.PillarCompletion {
	return &entity.PillarCompletion{
		ID:        m.ID,
		DayID:     m.DayID,
		Pillar:    entity.Pillar(m.Pillar),
		Completed: m.Completed,
		Source:    entity.CompletionSource(m.Source),
		UpdatedAt: m.UpdatedAt,
	}
}

// fromCompletionDomain maps a domain entity to a persistence model.
func fromCompletionDomain(c *entity.PillarCompletion) *model.PillarCompletionModel {
	return &model.PillarCompletionModel{
		ID:        c.ID,
		DayID:     c.DayID,
		Pillar:    string(c.Pillar),
		Completed: c.Completed,
		Source:    string(c.Source),
		UpdatedAt: c.UpdatedAt,
	}
}
