package impl

import (
	"context"
	"log/slog"
	"time"

	"disciplined/internal/domain/entity"
	domainerrors "disciplined/internal/domain/errors"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/schedule"
	"disciplined/internal/domain/service"
	"disciplined/internal/errors"
	"disciplined/internal/usecase"

	"github.com/google/uuid"
)

// streakLookbackDays bounds how far back the streak walk reads.
const streakLookbackDays = 400

type dayService struct {
	dayRepo   repository.DayRepository
	entryRepo repository.EntryRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewDayService creates a new day service instance
func NewDayService(
	dayRepo repository.DayRepository,
	entryRepo repository.EntryRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.DayUsecase {
	return &dayService{
		dayRepo:   dayRepo,
		entryRepo: entryRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetDay retrieves (creating if needed) the day record for a date key,
// with all four pillar completions seeded.
func (s *dayService) GetDay(ctx context.Context, userID uuid.UUID, date string) (*usecase.DayView, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	day, err := s.getOrCreateDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	for _, pillar := range entity.Pillars {
		if err := s.dayRepo.SeedCompletion(ctx, &entity.PillarCompletion{
			DayID:  day.ID,
			Pillar: pillar,
		}); err != nil {
			return nil, errors.Wrap(err, "failed to seed pillar completion")
		}
	}

	completions, err := s.dayRepo.ListCompletions(ctx, day.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list completions")
	}

	entries, err := s.entryRepo.ListEntries(ctx, userID, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list entries")
	}

	return &usecase.DayView{Day: day, Completions: completions, Entries: entries}, nil
}

// SetPillarManually sets a pillar's completed flag by explicit user action.
func (s *dayService) SetPillarManually(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar, completed bool) (*entity.PillarCompletion, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if !pillar.Valid() {
		return nil, domainerrors.ErrInvalidPillar
	}

	completion, err := s.getOrCreateCompletion(ctx, userID, date, pillar)
	if err != nil {
		return nil, err
	}

	if err := s.dayRepo.UpdateCompletion(ctx, completion.ID, completed, entity.SourceManual); err != nil {
		return nil, errors.Wrap(err, "failed to update completion")
	}

	completion.Completed = completed
	completion.Source = entity.SourceManual

	s.publishDayUpdated(ctx, userID, date, completion)

	return completion, nil
}

// LogEntry appends a sub-item under a pillar and recomputes that pillar's
// auto-completion from the new evidence.
func (s *dayService) LogEntry(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar, note string) (*entity.PillarEntry, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if !pillar.Valid() {
		return nil, domainerrors.ErrInvalidPillar
	}

	entry := &entity.PillarEntry{
		UserID: userID,
		Date:   date,
		Pillar: pillar,
		Note:   note,
	}

	if err := s.entryRepo.CreateEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to create entry")
	}

	if _, err := s.RecomputePillar(ctx, userID, date, pillar); err != nil {
		return nil, err
	}

	return entry, nil
}

// RecomputePillar re-derives a pillar's completed flag from logged entries.
// Manually set flags are never overwritten. Only the train pillar has an
// evidence rule today; eat, word and freedom stay manual-only.
func (s *dayService) RecomputePillar(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (*usecase.RecomputeResult, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if !pillar.Valid() {
		return nil, domainerrors.ErrInvalidPillar
	}

	completion, err := s.getOrCreateCompletion(ctx, userID, date, pillar)
	if err != nil {
		return nil, err
	}

	// Manual wins. A user who unticked a pillar keeps it unticked no matter
	// how many entries land afterwards.
	if completion.Source == entity.SourceManual {
		return &usecase.RecomputeResult{Outcome: usecase.OutcomeNoChange, Completion: completion}, nil
	}

	if pillar != entity.PillarTrain {
		return &usecase.RecomputeResult{Outcome: usecase.OutcomeNoChange, Completion: completion}, nil
	}

	count, err := s.entryRepo.CountEntries(ctx, userID, date, pillar)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count entries")
	}

	derived := count > 0
	if derived == completion.Completed {
		return &usecase.RecomputeResult{Outcome: usecase.OutcomeNoChange, Completion: completion}, nil
	}

	// Auto marks the row only while it holds evidence; a recompute that
	// clears the flag clears the source with it.
	source := entity.SourceAuto
	if !derived {
		source = entity.SourceNone
	}

	if err := s.dayRepo.UpdateCompletion(ctx, completion.ID, derived, source); err != nil {
		return nil, errors.Wrap(err, "failed to update completion")
	}

	completion.Completed = derived
	completion.Source = source

	s.publishDayUpdated(ctx, userID, date, completion)

	return &usecase.RecomputeResult{Outcome: usecase.OutcomeUpdated, Completion: completion}, nil
}

// GetStreak counts consecutive all-pillars-complete days ending at, or the
// day before, the given date key. Today not being finished yet does not
// break a streak that ran through yesterday.
func (s *dayService) GetStreak(ctx context.Context, userID uuid.UUID, today string) (int, error) {
	if err := validateDate(today); err != nil {
		return 0, err
	}

	end, err := time.Parse(schedule.DateLayout, today)
	if err != nil {
		return 0, domainerrors.ErrInvalidDate
	}
	from := end.AddDate(0, 0, -streakLookbackDays).Format(schedule.DateLayout)

	days, err := s.dayRepo.ListDaysInRange(ctx, userID, from, today)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list days")
	}

	completeByDate := make(map[string]bool, len(days))
	for _, d := range days {
		completeByDate[d.Day.Date] = entity.AllPillarsComplete(d.Completions)
	}

	streak := 0
	cursor := end
	// An unfinished today is skipped, not counted against the streak.
	if !completeByDate[cursor.Format(schedule.DateLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for completeByDate[cursor.Format(schedule.DateLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak, nil
}

// ListRange retrieves day records with completions for date keys in
// [from, to], newest first.
func (s *dayService) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*repository.DayWithCompletions, error) {
	if err := validateDate(from); err != nil {
		return nil, err
	}
	if err := validateDate(to); err != nil {
		return nil, err
	}

	days, err := s.dayRepo.ListDaysInRange(ctx, userID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list days")
	}

	return days, nil
}

// getOrCreateDay fetches the day row, creating it when absent. A concurrent
// create loses the insert race and refetches.
func (s *dayService) getOrCreateDay(ctx context.Context, userID uuid.UUID, date string) (*entity.DayRecord, error) {
	day, err := s.dayRepo.FindDay(ctx, userID, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, repository.ErrDayNotFound) {
		return nil, errors.Wrap(err, "failed to find day")
	}

	day = &entity.DayRecord{UserID: userID, Date: date}
	if err := s.dayRepo.CreateDay(ctx, day); err != nil {
		if errors.Is(err, repository.ErrDuplicateDay) {
			day, err = s.dayRepo.FindDay(ctx, userID, date)
			if err != nil {
				return nil, errors.Wrap(err, "failed to refetch day after duplicate create")
			}

			return day, nil
		}

		return nil, errors.Wrap(err, "failed to create day")
	}

	return day, nil
}

// getOrCreateCompletion seeds and fetches the completion row for a pillar.
func (s *dayService) getOrCreateCompletion(ctx context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (*entity.PillarCompletion, error) {
	day, err := s.getOrCreateDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if err := s.dayRepo.SeedCompletion(ctx, &entity.PillarCompletion{
		DayID:  day.ID,
		Pillar: pillar,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to seed completion")
	}

	completion, err := s.dayRepo.FindCompletion(ctx, day.ID, pillar)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find completion")
	}

	return completion, nil
}

// publishDayUpdated notifies open clients, best effort.
func (s *dayService) publishDayUpdated(ctx context.Context, userID uuid.UUID, date string, completion *entity.PillarCompletion) {
	err := s.publisher.PublishDayUpdated(ctx, &service.DayUpdatedEvent{
		UserID:    userID.String(),
		Date:      date,
		Pillar:    string(completion.Pillar),
		Completed: completion.Completed,
		Source:    string(completion.Source),
	})
	if err != nil {
		s.logger.Warn("failed to publish day-updated event",
			slog.String("user_id", userID.String()),
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
	}
}

func validateDate(date string) error {
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return domainerrors.ErrInvalidDate.WithDetails(date)
	}

	return nil
}
