package entity

import (
	"time"

	"github.com/google/uuid"
)

// DayRecord is one calendar day of tracking for one user. Date is the
// legacy UTC-anchored "YYYY-MM-DD" key, unique per user.
type DayRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// PillarCompletion is the completion flag for one pillar on one day.
type PillarCompletion struct {
	ID        uuid.UUID        `json:"id"`
	DayID     uuid.UUID        `json:"day_id"`
	Pillar    Pillar           `json:"pillar"`
	Completed bool             `json:"completed"`
	Source    CompletionSource `json:"source"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AllPillarsComplete reports whether all four pillars are marked complete.
// A missing pillar counts as incomplete.
func AllPillarsComplete(completions []*PillarCompletion) bool {
	done := make(map[Pillar]bool, len(completions))
	for _, c := range completions {
		if c.Completed {
			done[c.Pillar] = true
		}
	}

	for _, p := range Pillars {
		if !done[p] {
			return false
		}
	}

	return true
}
