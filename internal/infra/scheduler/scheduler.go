package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"homework_notification_bot/internal/app" // For StatusService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner polls the status service once immediately and then every period.
type Runner struct {
	cronEngine *cron.Cron
	service    app.StatusService
	logger     *logrus.Entry
	period     time.Duration
	maxCycles  int64

	cycles   atomic.Int64
	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner; maxCycles 0 means poll until the context is cancelled.
// Periods below one second are rounded up to a second by the cron schedule.
func NewRunner(service app.StatusService, logger *logrus.Entry, period time.Duration, maxCycles int) *Runner {
	cronLogger := cron.PrintfLogger(logger)
	return &Runner{
		cronEngine: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		service:   service,
		logger:    logger,
		period:    period,
		maxCycles: int64(maxCycles),
		done:      make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled (returning ctx.Err()) or maxCycles cycles have run (returning nil).
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Infof("Starting homework poller, period %s", r.period)

	r.runCycle(ctx)
	if r.finished() {
		r.logger.Info("Homework poller finished its cycles")
		return nil
	}

	r.cronEngine.Schedule(cron.Every(r.period), cron.FuncJob(func() {
		r.runCycle(ctx)
	}))
	r.cronEngine.Start()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-r.done:
	}
	r.Stop()
	return err
}

func (r *Runner) Stop() {
	r.logger.Info("Stopping homework poller...")
	ctx := r.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	r.logger.Info("Homework poller stopped.")
}

// Cycles reports how many poll cycles have completed.
func (r *Runner) Cycles() int {
	return int(r.cycles.Load())
}

func (r *Runner) runCycle(ctx context.Context) {
	if r.finished() || ctx.Err() != nil {
		return
	}
	// Failures never reach the chat, only the log.
	if err := r.service.RunCycle(ctx); err != nil {
		r.logger.Errorf("program failure: %v", err)
	}
	n := r.cycles.Add(1)
	if r.maxCycles > 0 && n >= r.maxCycles {
		r.doneOnce.Do(func() { close(r.done) })
	}
}

func (r *Runner) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
