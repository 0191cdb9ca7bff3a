package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"disciplined/internal/usecase"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type stubScheduler struct {
	summary *usecase.RunSummary
	err     error
}

func (s *stubScheduler) Run(context.Context, time.Time) (*usecase.RunSummary, error) {
	return s.summary, s.err
}

func newTestApp(sched usecase.SchedulerUsecase) *fx.App {
	return fx.New(
		fx.NopLogger,
		fx.Provide(
			context.Background,
			func() usecase.SchedulerUsecase { return sched },
			func() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) },
		),
		fx.Invoke(runOnce),
	)
}

func TestRunOnce_FailedPassExitsNonZero(t *testing.T) {
	app := newTestApp(&stubScheduler{err: errors.New("list profiles failed")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))

	// Cron only sees the exit status, so a failed pass must not report 0.
	sig := <-app.Wait()
	require.Equal(t, 1, sig.ExitCode)
	require.NoError(t, app.Stop(ctx))
}

func TestRunOnce_CleanPassExitsZero(t *testing.T) {
	app := newTestApp(&stubScheduler{summary: &usecase.RunSummary{Users: 2, Sent: 1}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))

	sig := <-app.Wait()
	require.Equal(t, 0, sig.ExitCode)
	require.NoError(t, app.Stop(ctx))
}
