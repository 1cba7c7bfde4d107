// Package worker regenerates the calendar feed on a cron schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/tartampluch/go-occasions/internal/engine"
)

// Renderer produces the feed and the number of active occasions.
type Renderer interface {
	Export(ctx context.Context, now time.Time) ([]byte, int, error)
}

// Publisher receives each successfully rendered feed.
type Publisher interface {
	Update(data []byte)
}

// RefreshWorker pushes a fresh feed to Target immediately and then on every
// tick of Schedule.
type RefreshWorker struct {
	Renderer Renderer
	Target   Publisher
	Clock    engine.Clock
	Schedule string
}

// Refresh renders once and publishes the result. A failure is returned,
// not logged, and leaves the previous feed in place.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	start := time.Now()
	data, active, err := w.Renderer.Export(ctx, w.Clock.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRefresh, err)
	}

	w.Target.Update(data)

	slog.Info(config.MsgRefreshDone,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyActive, active,
		config.LogKeySizeBytes, len(data),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

// Run blocks until ctx is cancelled. An invalid schedule is returned before
// anything is rendered.
func (w *RefreshWorker) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	logger := cronLogger{log: log}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	tick := func() {
		if err := w.Refresh(ctx); err != nil {
			log.Error(config.MsgRefreshFailed, config.LogKeyError, err)
		}
	}
	if _, err := c.AddFunc(w.Schedule, tick); err != nil {
		return fmt.Errorf("%s %q: %w", config.ErrCronSpec, w.Schedule, err)
	}

	// Serve a feed before the first tick; failures are retried on schedule.
	tick()

	c.Start()
	log.Info(config.MsgWorkerStart, config.LogKeySchedule, w.Schedule)

	<-ctx.Done()
	log.Info(config.MsgWorkerStop)
	<-c.Stop().Done()
	return nil
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, config.LogKeyError, err)...)
}
