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

// pushSubscriptionRepository implements the repository.PushSubscriptionRepository interface.
type pushSubscriptionRepository struct {
	db *gorm.DB
}

// NewPushSubscriptionRepository is the constructor for pushSubscriptionRepository.
func NewPushSubscriptionRepository(db *gorm.DB) repository.PushSubscriptionRepository {
	return &pushSubscriptionRepository{
		db: db,
	}
}

// CreateSubscription persists a subscription for a user.
func (repo *pushSubscriptionRepository) CreateSubscription(ctx context.Context, sub *entity.PushSubscription) error {
	subM := fromSubscriptionDomain(sub)

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required subscription keys")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create push subscription")
	}

	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt

	return nil
}

// FindSubscriptionByUser retrieves the user's active subscription.
func (repo *pushSubscriptionRepository) FindSubscriptionByUser(ctx context.Context, userID uuid.UUID) (*entity.PushSubscription, error) {
	var subM model.PushSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&subM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find push subscription by user")
	}

	return toSubscriptionDomain(&subM), nil
}

// DeleteSubscriptionsByUser removes all subscriptions for a user.
func (repo *pushSubscriptionRepository) DeleteSubscriptionsByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PushSubscriptionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete push subscriptions by user")
	}

	return nil
}

// sendLogRepository implements the repository.SendLogRepository interface.
type sendLogRepository struct {
	db *gorm.DB
}

// NewSendLogRepository is the constructor for sendLogRepository.
func NewSendLogRepository(db *gorm.DB) repository.SendLogRepository {
	return &sendLogRepository{
		db: db,
	}
}

// SendLogExists reports whether a row exists for (user, kind, local date).
func (repo *sendLogRepository) SendLogExists(ctx context.Context, userID uuid.UUID, kind, localDate string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationSendLogModel{}).
		Where("user_id = ? AND kind = ? AND local_date = ?", userID, kind, localDate).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check send log")
	}

	return count > 0, nil
}

// CreateSendLog appends a ledger row. The unique (user, kind, local_date)
// key turns concurrent scheduler runs into ErrDuplicateSendLog.
func (repo *sendLogRepository) CreateSendLog(ctx context.Context, log *entity.NotificationSendLog) error {
	logM := fromSendLogDomain(log)

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSendLog
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create send log")
	}

	log.ID = logM.ID

	return nil
}

// toSubscriptionDomain maps a persistence model to a pure domain entity.
func toSubscriptionDomain(m *model.PushSubscriptionModel) *entity.PushSubscription {
	return &entity.PushSubscription{
		ID:        m.ID,
		UserID:    m.UserID,
		Endpoint:  m.Endpoint,
		P256dhKey: m.P256dhKey,
		AuthKey:   m.AuthKey,
		CreatedAt: m.CreatedAt,
	}
}

// fromSubscriptionDomain maps a domain entity to a persistence model.
func fromSubscriptionDomain(s *entity.PushSubscription) *model.PushSubscriptionModel {
	return &model.PushSubscriptionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Endpoint:  s.Endpoint,
		P256dhKey: s.P256dhKey,
		AuthKey:   s.AuthKey,
		CreatedAt: s.CreatedAt,
	}
}

// fromSendLogDomain maps a domain entity to a persistence model.
func fromSendLogDomain(l *entity.NotificationSendLog) *model.NotificationSendLogModel {
	return &model.NotificationSendLogModel{
		ID:          l.ID,
		UserID:      l.UserID,
		Kind:        l.Kind,
		LocalDate:   l.LocalDate,
		LocalMinute: l.LocalMinute,
		SentAt:      l.SentAt,
	}
}
