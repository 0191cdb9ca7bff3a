package repository

import (
	"context"
	"errors"

	"disciplined/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for day persistence.
var (
	// ErrDayNotFound is returned when no day record exists for the date.
	ErrDayNotFound = errors.New("day record not found")
	// ErrDuplicateDay is returned when a day record already exists for (user, date).
	ErrDuplicateDay = errors.New("day record already exists")
	// ErrCompletionNotFound is returned when a pillar completion row is missing.
	ErrCompletionNotFound = errors.New("pillar completion not found")
)

// DayWithCompletions bundles a day record with its pillar completion rows.
type DayWithCompletions struct {
	Day         *entity.DayRecord
	Completions []*entity.PillarCompletion
}

// DayRepository defines the interface for day/pillar completion persistence.
type DayRepository interface {
	// CreateDay persists a new day record. Returns ErrDuplicateDay when the
	// (user, date) pair already exists so callers can refetch instead.
	CreateDay(ctx context.Context, day *entity.DayRecord) error

	// FindDay retrieves the day record for a user and date key.
	FindDay(ctx context.Context, userID uuid.UUID, date string) (*entity.DayRecord, error)

	// SeedCompletion inserts a pillar completion row if none exists for
	// (day, pillar). An existing row is left untouched.
	SeedCompletion(ctx context.Context, completion *entity.PillarCompletion) error

	// FindCompletion retrieves the completion row for a day and pillar.
	FindCompletion(ctx context.Context, dayID uuid.UUID, pillar entity.Pillar) (*entity.PillarCompletion, error)

	// ListCompletions retrieves all completion rows for a day.
	ListCompletions(ctx context.Context, dayID uuid.UUID) ([]*entity.PillarCompletion, error)

	// UpdateCompletion sets the completed flag and source of a completion row.
	UpdateCompletion(ctx context.Context, completionID uuid.UUID, completed bool, source entity.CompletionSource) error

	// ListDaysInRange retrieves a user's day records with completions for
	// date keys in [from, to], newest first.
	ListDaysInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*DayWithCompletions, error)
}

// EntryRepository defines the interface for pillar entry persistence.
type EntryRepository interface {
	// CreateEntry persists a logged sub-item.
	CreateEntry(ctx context.Context, entry *entity.PillarEntry) error

	// CountEntries counts a user's entries for a date and pillar.
	CountEntries(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (int64, error)

	// ListEntries retrieves a user's entries for a date, oldest first.
	ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]*entity.PillarEntry, error)
}
