package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const minutesPerDay = 24 * 60

// Fasting schedule validation errors, surfaced at the settings-write boundary.
// The scheduler trusts stored data and never re-validates.
var (
	ErrEatingHoursOutOfRange = errors.New("eating hours must be between 1 and 23")
	ErrEatingStartOutOfRange = errors.New("eating start must be between 0 and 1439 minutes")
)

// FastingSchedule describes a user's recurring daily eating window. The
// window opens at EatingStartMinute and stays open for EatingHours hours,
// wrapping past midnight when needed; the rest of the day is fasting.
type FastingSchedule struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	EatingStartMinute int       `json:"eating_start_minute"` // Minutes since local midnight.
	EatingHours       int       `json:"eating_hours"`        // 1..23, fasting portion is 24 - EatingHours.
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EatingEndMinute derives the minute-of-day the eating window closes,
// wrapping past midnight.
func (f *FastingSchedule) EatingEndMinute() int {
	return (f.EatingStartMinute + f.EatingHours*60) % minutesPerDay
}

// Validate checks the schedule invariants.
func (f *FastingSchedule) Validate() error {
	if f.EatingHours < 1 || f.EatingHours > 23 {
		return ErrEatingHoursOutOfRange
	}
	if f.EatingStartMinute < 0 || f.EatingStartMinute >= minutesPerDay {
		return ErrEatingStartOutOfRange
	}

	return nil
}
