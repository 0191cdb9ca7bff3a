package schedule

import (
	"testing"
	"time"

	"disciplined/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(t *testing.T, zone string, hour, minute int) LocalClock {
	t.Helper()

	loc := mustLocation(t, zone)
	local := time.Date(2025, 6, 10, hour, minute, 0, 0, loc)

	return NewLocalClock(local, loc)
}

func TestTrigger_Due(t *testing.T) {
	const tolerance = 5

	trigger := Trigger{Kind: KindWindowStart, TargetMinute: 12 * 60}

	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "exact target minute", hour: 12, minute: 0, want: true},
		{name: "inside tolerance", hour: 12, minute: 4, want: true},
		{name: "first minute past tolerance", hour: 12, minute: 5, want: false},
		{name: "one minute early", hour: 11, minute: 59, want: false},
		{name: "much later", hour: 15, minute: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockAt(t, "America/Chicago", tt.hour, tt.minute)
			assert.Equal(t, tt.want, trigger.Due(clock, tolerance))
		})
	}
}

func TestTrigger_DueAcrossMidnight(t *testing.T) {
	const tolerance = 5

	// Target 23:58; a run at 00:02 is still inside the window.
	trigger := Trigger{Kind: KindWindowEnd, TargetMinute: 23*60 + 58}

	assert.True(t, trigger.Due(clockAt(t, "America/Chicago", 23, 58), tolerance))
	assert.True(t, trigger.Due(clockAt(t, "America/Chicago", 0, 2), tolerance))
	assert.False(t, trigger.Due(clockAt(t, "America/Chicago", 0, 3), tolerance))
}

func TestTrigger_LogKind(t *testing.T) {
	assert.Equal(t, "window_start@1320", Trigger{Kind: KindWindowStart, TargetMinute: 1320}.LogKind())
	assert.Equal(t, "window_end@480", Trigger{Kind: KindWindowEnd, TargetMinute: 480}.LogKind())
	assert.Equal(t, "daily_reminder", Trigger{Kind: KindDailyReminder, TargetMinute: 1200}.LogKind())
}

func TestFastingTriggers(t *testing.T) {
	// Eating 12:00 for 8 hours: open 12:00, close 20:00, heads-up 19:30.
	sched := &entity.FastingSchedule{EatingStartMinute: 12 * 60, EatingHours: 8}

	triggers := FastingTriggers(sched, 30)
	require.Len(t, triggers, 3)

	assert.Equal(t, Trigger{Kind: KindWindowStart, TargetMinute: 720}, triggers[0])
	assert.Equal(t, Trigger{Kind: KindWindowEnd, TargetMinute: 1200}, triggers[1])
	assert.Equal(t, Trigger{Kind: KindWindowEndingSoon, TargetMinute: 1170}, triggers[2])
}

func TestFastingTriggers_WindowWrapsMidnight(t *testing.T) {
	// Eating 22:00 for 10 hours: closes 08:00 the next day, heads-up 07:30.
	sched := &entity.FastingSchedule{EatingStartMinute: 22 * 60, EatingHours: 10}

	triggers := FastingTriggers(sched, 30)
	require.Len(t, triggers, 3)

	assert.Equal(t, 1320, triggers[0].TargetMinute)
	assert.Equal(t, 480, triggers[1].TargetMinute)
	assert.Equal(t, 450, triggers[2].TargetMinute)

	// At 07:58 the close trigger is not yet due; at 08:02 it is, and its
	// log kind is tied to the 08:00 target so the same physical window
	// cannot fire twice across the date change.
	const tolerance = 5
	assert.False(t, triggers[1].Due(clockAt(t, "America/Chicago", 7, 58), tolerance))
	assert.True(t, triggers[1].Due(clockAt(t, "America/Chicago", 8, 2), tolerance))
	assert.Equal(t, "window_end@480", triggers[1].LogKind())
}

func TestFastingTriggers_EndingSoonWrapsMidnight(t *testing.T) {
	// Eating 18:00 for 6 hours closes at exactly midnight; the heads-up
	// lands at 23:30 the previous evening.
	sched := &entity.FastingSchedule{EatingStartMinute: 18 * 60, EatingHours: 6}

	triggers := FastingTriggers(sched, 30)
	assert.Equal(t, 0, triggers[1].TargetMinute)
	assert.Equal(t, 1410, triggers[2].TargetMinute)
}
