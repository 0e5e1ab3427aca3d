package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/domain"
	"github.com/hamed0406/resourceprobe/internal/notify"
	"github.com/hamed0406/resourceprobe/internal/repo"
)

// Source produces one full pass of outcomes. Satisfied by *runner.Runner.
type Source interface {
	Run(ctx context.Context) []domain.Outcome
}

// Rechecker re-probes the configured URLs on an interval, stores each
// pass, and notifies when checks fail.
type Rechecker struct {
	Logger   *zap.Logger
	Source   Source
	Runs     repo.RunStore
	Notifier notify.Notifier
	Suite    string
	Interval time.Duration
}

func NewRechecker(
	logger *zap.Logger,
	source Source,
	runs repo.RunStore,
	notifier notify.Notifier,
	suite string,
	interval time.Duration,
) *Rechecker {
	if interval < 0 {
		interval = 0
	}
	return &Rechecker{
		Logger:   logger,
		Source:   source,
		Runs:     runs,
		Notifier: notifier,
		Suite:    suite,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (r *Rechecker) Run(ctx context.Context) {
	if r.Interval == 0 {
		// disabled
		r.Logger.Info("rechecker_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("rechecker_stopped")
			return
		case <-t.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Rechecker) runOnce(ctx context.Context) {
	outcomes := r.Source.Run(ctx)

	run := &repo.Run{
		Suite:     r.Suite,
		StartedAt: time.Now().UTC(),
		Outcomes:  outcomes,
	}
	if err := r.Runs.SaveRun(ctx, run); err != nil {
		r.Logger.Warn("rechecker_save_error", zap.Error(err))
	}

	failures := run.Failures()
	r.Logger.Info("rechecker_pass",
		zap.Int("outcomes", len(outcomes)),
		zap.Int("failures", failures),
	)

	if failures == 0 || r.Notifier == nil {
		return
	}
	title, text := notify.FailureSummary(r.Suite, outcomes)
	if title == "" {
		return
	}
	if err := r.Notifier.Send(ctx, title, text); err != nil {
		r.Logger.Warn("rechecker_notify_error", zap.Error(err))
	}
}
