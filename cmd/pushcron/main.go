// Command pushcron runs one pass of the reminder scheduler and exits. It is
// meant to be invoked every few minutes by cron or a container scheduler.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"disciplined/config"
	logs "disciplined/internal/infra/log"
	"disciplined/internal/infra/notification"
	"disciplined/internal/infra/persistence/postgres"
	"disciplined/internal/usecase"
	"disciplined/internal/usecase/impl"
	"disciplined/internal/util"

	"go.uber.org/fx"
)

type runParams struct {
	fx.In
	fx.Shutdowner

	Scheduler usecase.SchedulerUsecase
	Logger    *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		fx.Provide(impl.NewReminderService),
		fx.Invoke(runOnce),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewSettingsRepository,
			postgres.NewDayRepository,
			postgres.NewPushSubscriptionRepository,
			postgres.NewSendLogRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.NewWebPushService,
		),
	)
}

func runOnce(ctx context.Context, params runParams) {
	go runPass(ctx, params)
}

// runPass executes one scheduler pass and shuts the app down, carrying a
// non-zero exit code when the pass failed so cron sees the failure.
func runPass(ctx context.Context, params runParams) {
	start := time.Now()

	summary, err := params.Scheduler.Run(ctx, start)
	if err != nil {
		params.Logger.Error("Scheduler run failed", slog.Any("error", err))

		if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
			params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
			os.Exit(1)
		}

		return
	}

	params.Logger.Info("Scheduler run finished",
		slog.Int("users", summary.Users),
		slog.Int("sent", summary.Sent),
		slog.Int("skipped", summary.Skipped),
		slog.Int("cleaned", summary.Cleaned),
		slog.String("elapsed", util.FormatDuration(time.Since(start))),
	)

	if err := params.Shutdown(); err != nil {
		params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", err))
		os.Exit(1)
	}
}
