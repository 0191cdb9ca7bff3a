package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disciplined/internal/domain/entity"
	"disciplined/internal/usecase"
)

type dayFixture struct {
	days      *fakeDayRepo
	entries   *fakeEntryRepo
	publisher *fakePublisher
	svc       usecase.DayUsecase
	userID    uuid.UUID
}

func newDayFixture(t *testing.T) *dayFixture {
	t.Helper()

	f := &dayFixture{
		days:      newFakeDayRepo(),
		entries:   newFakeEntryRepo(),
		publisher: &fakePublisher{},
		userID:    uuid.New(),
	}
	f.svc = NewDayService(f.days, f.entries, f.publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return f
}

const testDate = "2025-07-15"

func TestGetDay_CreatesDayWithSeededPillars(t *testing.T) {
	f := newDayFixture(t)

	view, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)

	assert.Equal(t, testDate, view.Day.Date)
	assert.Len(t, view.Completions, 4)
	for _, c := range view.Completions {
		assert.False(t, c.Completed)
		assert.Equal(t, entity.SourceNone, c.Source)
	}
	assert.Empty(t, view.Entries)

	// A second fetch reuses the same day record.
	again, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)
	assert.Equal(t, view.Day.ID, again.Day.ID)
}

func TestGetDay_RejectsMalformedDate(t *testing.T) {
	f := newDayFixture(t)

	_, err := f.svc.GetDay(context.Background(), f.userID, "July 15")
	assert.Error(t, err)
}

func TestLogEntry_AutoCompletesTrainPillar(t *testing.T) {
	f := newDayFixture(t)

	_, err := f.svc.LogEntry(context.Background(), f.userID, testDate, entity.PillarTrain, "5x5 squats")
	require.NoError(t, err)

	view, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)

	train := completionFor(t, view.Completions, entity.PillarTrain)
	assert.True(t, train.Completed)
	assert.Equal(t, entity.SourceAuto, train.Source)

	// The update was published for open clients.
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "train", f.publisher.events[0].Pillar)
	assert.True(t, f.publisher.events[0].Completed)
}

func TestLogEntry_OtherPillarsStayManualOnly(t *testing.T) {
	f := newDayFixture(t)

	_, err := f.svc.LogEntry(context.Background(), f.userID, testDate, entity.PillarWord, "read ch. 3")
	require.NoError(t, err)

	view, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)

	word := completionFor(t, view.Completions, entity.PillarWord)
	assert.False(t, word.Completed)
	assert.Empty(t, f.publisher.events)
}

func TestRecomputePillar_ManualFlagWins(t *testing.T) {
	f := newDayFixture(t)

	// User unticks train despite having logged a workout.
	_, err := f.svc.LogEntry(context.Background(), f.userID, testDate, entity.PillarTrain, "run")
	require.NoError(t, err)
	_, err = f.svc.SetPillarManually(context.Background(), f.userID, testDate, entity.PillarTrain, false)
	require.NoError(t, err)

	// Further evidence does not flip it back.
	result, err := f.svc.RecomputePillar(context.Background(), f.userID, testDate, entity.PillarTrain)
	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeNoChange, result.Outcome)
	assert.False(t, result.Completion.Completed)
	assert.Equal(t, entity.SourceManual, result.Completion.Source)
}

func TestRecomputePillar_NoChangeWhenDerivedMatches(t *testing.T) {
	f := newDayFixture(t)

	// No entries, pillar already incomplete.
	result, err := f.svc.RecomputePillar(context.Background(), f.userID, testDate, entity.PillarTrain)
	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeNoChange, result.Outcome)
}

func TestRecomputePillar_ClearsSourceWhenEvidenceGone(t *testing.T) {
	f := newDayFixture(t)

	// An auto-completed train pillar whose entries are no longer there,
	// e.g. stale state left behind by an earlier recompute.
	view, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)
	train := completionFor(t, view.Completions, entity.PillarTrain)
	require.NoError(t, f.days.UpdateCompletion(context.Background(), train.ID, true, entity.SourceAuto))

	result, err := f.svc.RecomputePillar(context.Background(), f.userID, testDate, entity.PillarTrain)
	require.NoError(t, err)

	assert.Equal(t, usecase.OutcomeUpdated, result.Outcome)
	assert.False(t, result.Completion.Completed)
	assert.Equal(t, entity.SourceNone, result.Completion.Source)

	stored, err := f.days.FindCompletion(context.Background(), view.Day.ID, entity.PillarTrain)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Equal(t, entity.SourceNone, stored.Source)
}

func TestGetDay_LostInsertRaceRefetches(t *testing.T) {
	f := newDayFixture(t)

	// Another writer inserts the row between our find and create; the
	// duplicate-key error must resolve to their row, not surface.
	var raced *entity.DayRecord
	f.days.beforeCreateDay = func() {
		if raced == nil {
			raced = f.days.insertDay(f.userID, testDate)
		}
	}

	view, err := f.svc.GetDay(context.Background(), f.userID, testDate)
	require.NoError(t, err)

	require.NotNil(t, raced)
	assert.Equal(t, raced.ID, view.Day.ID)
	assert.Equal(t, 1, f.days.dayCount())
}

func TestSetPillarManually_MarksSourceManual(t *testing.T) {
	f := newDayFixture(t)

	completion, err := f.svc.SetPillarManually(context.Background(), f.userID, testDate, entity.PillarFreedom, true)
	require.NoError(t, err)

	assert.True(t, completion.Completed)
	assert.Equal(t, entity.SourceManual, completion.Source)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "freedom", f.publisher.events[0].Pillar)
}

func TestSetPillarManually_RejectsUnknownPillar(t *testing.T) {
	f := newDayFixture(t)

	_, err := f.svc.SetPillarManually(context.Background(), f.userID, testDate, entity.Pillar("sleep"), true)
	assert.Error(t, err)
}

func TestGetStreak_CountsConsecutiveCompleteDays(t *testing.T) {
	f := newDayFixture(t)

	f.completeDay(t, "2025-07-13")
	f.completeDay(t, "2025-07-14")

	// Today unfinished: streak runs through yesterday.
	streak, err := f.svc.GetStreak(context.Background(), f.userID, "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	// Finishing today extends it.
	f.completeDay(t, "2025-07-15")
	streak, err = f.svc.GetStreak(context.Background(), f.userID, "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestGetStreak_GapResetsCount(t *testing.T) {
	f := newDayFixture(t)

	f.completeDay(t, "2025-07-11")
	// 2025-07-12 missing entirely.
	f.completeDay(t, "2025-07-13")
	f.completeDay(t, "2025-07-14")

	streak, err := f.svc.GetStreak(context.Background(), f.userID, "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestGetStreak_ZeroWithoutAnyCompleteDay(t *testing.T) {
	f := newDayFixture(t)

	streak, err := f.svc.GetStreak(context.Background(), f.userID, "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func (f *dayFixture) completeDay(t *testing.T, date string) {
	t.Helper()
	for _, pillar := range entity.Pillars {
		_, err := f.svc.SetPillarManually(context.Background(), f.userID, date, pillar, true)
		require.NoError(t, err)
	}
}

func completionFor(t *testing.T, completions []*entity.PillarCompletion, pillar entity.Pillar) *entity.PillarCompletion {
	t.Helper()
	for _, c := range completions {
		if c.Pillar == pillar {
			return c
		}
	}
	t.Fatalf("no completion for pillar %s", pillar)

	return nil
}
