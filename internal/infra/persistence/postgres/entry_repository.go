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
)

// entryRepository implements the repository.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository is the constructor for entryRepository.
func NewEntryRepository(db *gorm.DB) repository.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// CreateEntry persists a logged sub-item.
func (repo *entryRepository) CreateEntry(ctx context.Context, entry *entity.PillarEntry) error {
	entryM := fromEntryDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create pillar entry")
	}

	entry.ID = entryM.ID
	entry.CreatedAt = entryM.CreatedAt

	return nil
}

// CountEntries counts a user's entries for a date and pillar.
func (repo *entryRepository) CountEntries(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PillarEntryModel{}).
		Where("user_id = ? AND date = ? AND pillar = ?", userID, date, string(pillar)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count pillar entries")
	}

	return count, nil
}

// ListEntries retrieves a user's entries for a date, oldest first.
func (repo *entryRepository) ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]*entity.PillarEntry, error) {
	var entryModels []*model.PillarEntryModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pillar entries")
	}

	entries := make([]*entity.PillarEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toEntryDomain(entryM))
	}

	return entries, nil
}

// toEntryDomain maps a persistence model to a pure domain entity.
func toEntryDomain(m *model.PillarEntryModel) *entity.PillarEntry {
	return &entity.PillarEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.Date,
		Pillar:    entity.Pillar(m.Pillar),
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// fromEntryDomain maps a domain entity to a persistence model.
func fromEntryDomain(e *entity.PillarEntry) *model.PillarEntryModel {
	return &model.PillarEntryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      e.Date,
		Pillar:    string(e.Pillar),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}
