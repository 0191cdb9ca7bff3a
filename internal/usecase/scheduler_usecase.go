package usecase

import (
	"context"
	"time"
)

// RunSummary aggregates what one scheduler pass did.
type RunSummary struct {
	Users   int `json:"users"`   // Push-enabled users examined.
	Sent    int `json:"sent"`    // Notifications delivered and logged.
	Skipped int `json:"skipped"` // Due triggers suppressed or failed without a log row.
	Cleaned int `json:"cleaned"` // Dead subscriptions deleted after the push service reported them gone.
}

// SchedulerUsecase defines the interface for the reminder scheduler.
type SchedulerUsecase interface {
	// Run evaluates every push-enabled user's triggers against the given
	// instant and delivers whatever is due and not yet logged for their
	// local day. Run is idempotent: re-running with the same instant sends
	// nothing new.
	Run(ctx context.Context, now time.Time) (*RunSummary, error)
}
