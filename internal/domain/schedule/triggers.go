package schedule

import (
	"fmt"

	"disciplined/internal/domain/entity"
)

// Base trigger kinds. Window kinds are minute-qualified in the send log
// (e.g. "window_start@720") so a window that crosses midnight, or a
// schedule changed mid-day, never collides with an earlier instance under
// the same calendar date.
const (
	KindWindowStart      = "window_start"
	KindWindowEnd        = "window_end"
	KindWindowEndingSoon = "window_ending_soon"
	KindDailyReminder    = "daily_reminder"
)

// Trigger is one recurring time-of-day rule for a user.
type Trigger struct {
	Kind         string // Base kind.
	TargetMinute int    // Minute-of-day the rule fires at.
}

// LogKind returns the send-log key for the trigger. Window triggers carry
// their target minute; the daily reminder is a plain kind because its
// target comes from a single settings field.
func (t Trigger) LogKind() string {
	if t.Kind == KindDailyReminder {
		return t.Kind
	}

	return fmt.Sprintf("%s@%d", t.Kind, t.TargetMinute)
}

// Due reports whether the trigger should fire now: the clock's minute falls
// in the trailing tolerance window [target, target+tolerance) on the
// modulo-1440 ring. The tolerance absorbs a scheduler that runs every few
// minutes rather than on the exact minute.
func (t Trigger) Due(clock LocalClock, tolerance int) bool {
	return clock.MinutesSince(t.TargetMinute) < tolerance
}

// FastingTriggers builds the window triggers for a fasting schedule:
// window open, window close, and a heads-up endingSoonLead minutes before
// the close.
func FastingTriggers(sched *entity.FastingSchedule, endingSoonLead int) []Trigger {
	end := sched.EatingEndMinute()

	return []Trigger{
		{Kind: KindWindowStart, TargetMinute: sched.EatingStartMinute},
		{Kind: KindWindowEnd, TargetMinute: end},
		{Kind: KindWindowEndingSoon, TargetMinute: mod1440(end - endingSoonLead)},
	}
}
