package usecase

import (
	"context"

	"disciplined/internal/domain/entity"
	"disciplined/internal/domain/repository"

	"github.com/google/uuid"
)

// RecomputeOutcome classifies what a pillar recompute did.
type RecomputeOutcome string

const (
	// OutcomeNoChange means the derived state already matched, or a manual
	// flag blocked the recompute.
	OutcomeNoChange RecomputeOutcome = "no_change"
	// OutcomeUpdated means the completion flag was rewritten from evidence.
	OutcomeUpdated RecomputeOutcome = "updated"
)

// RecomputeResult reports the effect of a pillar recompute.
type RecomputeResult struct {
	Outcome    RecomputeOutcome         `json:"outcome"`
	Completion *entity.PillarCompletion `json:"completion"`
}

// DayView bundles everything the app shows for one day.
type DayView struct {
	Day         *entity.DayRecord          `json:"day"`
	Completions []*entity.PillarCompletion `json:"completions"`
	Entries     []*entity.PillarEntry      `json:"entries"`
}

// DayUsecase defines the interface for daily tracking use cases.
type DayUsecase interface {
	// GetDay retrieves (creating if needed) the day record for a date key,
	// with all four pillar completions seeded.
	GetDay(ctx context.Context, userID uuid.UUID, date string) (*DayView, error)

	// SetPillarManually sets a pillar's completed flag by explicit user
	// action. Manual flags win over any later auto recompute.
	SetPillarManually(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar, completed bool) (*entity.PillarCompletion, error)

	// LogEntry appends a sub-item under a pillar and recomputes that
	// pillar's auto-completion from the new evidence.
	LogEntry(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar, note string) (*entity.PillarEntry, error)

	// RecomputePillar re-derives a pillar's completed flag from logged
	// entries. Manually set flags are never overwritten.
	RecomputePillar(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (*RecomputeResult, error)

	// GetStreak counts consecutive all-pillars-complete days ending at, or
	// the day before, the given date key.
	GetStreak(ctx context.Context, userID uuid.UUID, today string) (int, error)

	// ListRange retrieves day records with completions for date keys in
	// [from, to], newest first.
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*repository.DayWithCompletions, error)
}
