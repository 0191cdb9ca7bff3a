// Package schedule contains the pure time-of-day math behind the reminder
// scheduler: resolving a wall-clock instant into a user's local calendar
// date and minute, and deciding whether a recurring trigger minute is due.
// Everything here takes an explicit instant so it can be tested without
// touching the wall clock.
package schedule

import "time"

// MinutesPerDay is the size of the minute-of-day ring.
const MinutesPerDay = 24 * 60

// DateLayout is the calendar date key format used across the stores.
const DateLayout = "2006-01-02"

// LocalClock is a wall-clock instant resolved into a user's timezone.
type LocalClock struct {
	local time.Time
}

// NewLocalClock resolves instant into loc.
func NewLocalClock(instant time.Time, loc *time.Location) LocalClock {
	return LocalClock{local: instant.In(loc)}
}

// Date returns the local calendar date as "YYYY-MM-DD".
func (c LocalClock) Date() string {
	return c.local.Format(DateLayout)
}

// Minute returns the local minute-of-day (0..1439).
func (c LocalClock) Minute() int {
	return c.local.Hour()*60 + c.local.Minute()
}

// MinutesSince returns how many minutes ago the target minute-of-day last
// occurred, on the modulo-1440 ring. The result is always in [0, 1440).
func (c LocalClock) MinutesSince(target int) int {
	return mod1440(c.Minute() - target)
}

// UTCDateKey converts the local calendar date to the UTC-anchored date key
// used by the legacy day tables. Anchoring to local noon keeps the
// conversion stable across DST transitions at midnight.
func (c LocalClock) UTCDateKey() string {
	noon := time.Date(c.local.Year(), c.local.Month(), c.local.Day(), 12, 0, 0, 0, c.local.Location())

	return noon.UTC().Format(DateLayout)
}

func mod1440(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}

	return m
}
