package entity

import (
	"time"

	"github.com/google/uuid"
)

// PillarEntry is a logged sub-item under a pillar for a day, e.g. a workout
// under train or a reading note under word. Entries are the evidence the
// auto-completion rules derive from.
type PillarEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      string    `json:"date"` // Same UTC-anchored key as DayRecord.Date.
	Pillar    Pillar    `json:"pillar"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
