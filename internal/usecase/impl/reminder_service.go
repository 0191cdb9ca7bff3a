package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"disciplined/config"
	"disciplined/internal/domain/entity"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/schedule"
	"disciplined/internal/domain/service"
	"disciplined/internal/errors"
	"disciplined/internal/usecase"

	"github.com/google/uuid"
)

type reminderService struct {
	settingsRepo     repository.SettingsRepository
	subscriptionRepo repository.PushSubscriptionRepository
	sendLogRepo      repository.SendLogRepository
	dayRepo          repository.DayRepository
	transport        service.PushTransport
	logger           *slog.Logger

	tolerance      int
	endingSoonLead int
	appBaseURL     string
}

// NewReminderService creates the reminder scheduler instance
func NewReminderService(
	settingsRepo repository.SettingsRepository,
	subscriptionRepo repository.PushSubscriptionRepository,
	sendLogRepo repository.SendLogRepository,
	dayRepo repository.DayRepository,
	transport service.PushTransport,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SchedulerUsecase {
	baseURL := ""
	if cfg.App != nil {
		baseURL = cfg.App.BaseURL
	}

	return &reminderService{
		settingsRepo:     settingsRepo,
		subscriptionRepo: subscriptionRepo,
		sendLogRepo:      sendLogRepo,
		dayRepo:          dayRepo,
		transport:        transport,
		logger:           logger,
		tolerance:        cfg.Push.ToleranceMinutes,
		endingSoonLead:   cfg.Push.EndingSoonLeadMinutes,
		appBaseURL:       baseURL,
	}
}

// Run evaluates every push-enabled user's triggers against the given
// instant. The send log makes it idempotent: one row per (user, kind,
// local date), written only after a successful delivery, so crashed or
// repeated runs never double-send and transient failures retry on the
// next pass inside the tolerance window.
func (s *reminderService) Run(ctx context.Context, now time.Time) (*usecase.RunSummary, error) {
	profiles, err := s.settingsRepo.ListPushEnabledProfiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list push-enabled profiles")
	}

	summary := &usecase.RunSummary{}

	for _, profile := range profiles {
		summary.Users++

		loc, err := profile.Settings.Location()
		if err != nil {
			// Bad timezone rows are skipped, not fatal; the rest of the
			// users still get their reminders.
			s.logger.Warn("skipping user with invalid timezone",
				slog.String("user_id", profile.Settings.UserID.String()),
				slog.String("timezone", profile.Settings.Timezone),
			)
			summary.Skipped++

			continue
		}

		clock := schedule.NewLocalClock(now, loc)

		for _, trigger := range s.triggersFor(profile) {
			if !trigger.Due(clock, s.tolerance) {
				continue
			}

			if err := s.fire(ctx, profile, trigger, clock, summary); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("reminder run finished",
		slog.Int("users", summary.Users),
		slog.Int("sent", summary.Sent),
		slog.Int("skipped", summary.Skipped),
		slog.Int("cleaned", summary.Cleaned),
	)

	return summary, nil
}

// triggersFor assembles the active triggers from a user's settings.
func (s *reminderService) triggersFor(profile *repository.NotificationProfile) []schedule.Trigger {
	var triggers []schedule.Trigger

	if profile.Settings.PushFastingWindows && profile.Fasting != nil {
		triggers = append(triggers, schedule.FastingTriggers(profile.Fasting, s.endingSoonLead)...)
	}

	if profile.Settings.PushDailyReminder {
		triggers = append(triggers, schedule.Trigger{
			Kind:         schedule.KindDailyReminder,
			TargetMinute: profile.Settings.DailyReminderMinute,
		})
	}

	return triggers
}

// fire delivers one due trigger for one user. Repository errors abort the
// whole run; delivery errors only skip this trigger.
func (s *reminderService) fire(ctx context.Context, profile *repository.NotificationProfile, trigger schedule.Trigger, clock schedule.LocalClock, summary *usecase.RunSummary) error {
	userID := profile.Settings.UserID
	kind := trigger.LogKind()

	sent, err := s.sendLogRepo.SendLogExists(ctx, userID, kind, clock.Date())
	if err != nil {
		return errors.Wrap(err, "failed to check send log")
	}
	if sent {
		return nil
	}

	// The daily reminder exists to nag about unfinished pillars. A finished
	// day still gets a log row so the trigger can't fire later in its
	// tolerance window, but no notification goes out.
	remaining := -1
	if trigger.Kind == schedule.KindDailyReminder {
		remaining, err = s.incompletePillars(ctx, userID, clock.UTCDateKey())
		if err != nil {
			return err
		}
		if remaining == 0 {
			summary.Skipped++

			return s.writeSendLog(ctx, userID, kind, clock)
		}
	}

	sub, err := s.subscriptionRepo.FindSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			// No browser to deliver to. No log row either: if the user
			// subscribes within the tolerance window they still get the
			// reminder.
			s.logger.Info("reminder skipped",
				slog.String("user_id", userID.String()),
				slog.String("kind", kind),
				slog.String("reason", "no_subscription"),
			)
			summary.Skipped++

			return nil
		}

		return errors.Wrap(err, "failed to find push subscription")
	}

	msg := s.messageFor(trigger, remaining)

	if err := s.transport.Send(ctx, sub, msg); err != nil {
		if errors.Is(err, service.ErrEndpointGone) {
			if delErr := s.subscriptionRepo.DeleteSubscriptionsByUser(ctx, userID); delErr != nil {
				return errors.Wrap(delErr, "failed to delete gone subscription")
			}
			summary.Cleaned++

			return nil
		}

		// Transient push-service failure. Leave no log row so the next run
		// inside the tolerance window retries.
		s.logger.Warn("push delivery failed",
			slog.String("user_id", userID.String()),
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		summary.Skipped++

		return nil
	}

	if err := s.writeSendLog(ctx, userID, kind, clock); err != nil {
		return err
	}
	summary.Sent++

	return nil
}

// incompletePillars counts pillars not yet complete for the day key. A day
// with no record yet has all four pillars open.
func (s *reminderService) incompletePillars(ctx context.Context, userID uuid.UUID, dateKey string) (int, error) {
	day, err := s.dayRepo.FindDay(ctx, userID, dateKey)
	if err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return len(entity.Pillars), nil
		}

		return 0, errors.Wrap(err, "failed to find day")
	}

	completions, err := s.dayRepo.ListCompletions(ctx, day.ID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list completions")
	}

	done := make(map[entity.Pillar]bool, len(completions))
	for _, c := range completions {
		if c.Completed {
			done[c.Pillar] = true
		}
	}

	remaining := 0
	for _, p := range entity.Pillars {
		if !done[p] {
			remaining++
		}
	}

	return remaining, nil
}

func (s *reminderService) writeSendLog(ctx context.Context, userID uuid.UUID, kind string, clock schedule.LocalClock) error {
	err := s.sendLogRepo.CreateSendLog(ctx, &entity.NotificationSendLog{
		UserID:      userID,
		Kind:        kind,
		LocalDate:   clock.Date(),
		LocalMinute: clock.Minute(),
		SentAt:      time.Now(),
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicateSendLog) {
		return errors.Wrap(err, "failed to write send log")
	}

	return nil
}

// messageFor builds the notification payload for a trigger kind.
func (s *reminderService) messageFor(trigger schedule.Trigger, remaining int) *service.PushMessage {
	switch trigger.Kind {
	case schedule.KindWindowStart:
		return service.NewPushMessage(
			"Eating window open",
			"Your eating window just opened. Enjoy your first meal.",
			s.appBaseURL,
		)
	case schedule.KindWindowEndingSoon:
		return service.NewPushMessage(
			"Eating window closing soon",
			fmt.Sprintf("About %d minutes left in your eating window.", s.endingSoonLead),
			s.appBaseURL,
		)
	case schedule.KindWindowEnd:
		return service.NewPushMessage(
			"Fasting begins",
			"Your eating window is closed. Fast well until tomorrow.",
			s.appBaseURL,
		)
	case schedule.KindDailyReminder:
		body := fmt.Sprintf("%d pillars still open today. Finish strong.", remaining)
		if remaining == 1 {
			body = "1 pillar still open today. Finish strong."
		}

		return service.NewPushMessage("Daily check-in", body, s.appBaseURL)
	default:
		return service.NewPushMessage("Disciplined Life", "You have a reminder.", s.appBaseURL)
	}
}
