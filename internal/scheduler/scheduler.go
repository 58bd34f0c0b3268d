// Package scheduler drives periodic jobs on a fixed cadence. Ticks never
// overlap: a slow run simply delays the next one, and a panicking run is
// contained and retried at the next regular tick.
package scheduler

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/jonboulle/clockwork"
)

// Job is one unit of periodic work. A returned error is logged, never fatal.
type Job func(ctx context.Context) error

// Scheduler runs jobs at a fixed interval.
type Scheduler struct {
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// New creates a scheduler with the given cadence.
func New(interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
	}
}

// SetClock swaps the scheduler clock. Tests only.
func (s *Scheduler) SetClock(c clockwork.Clock) {
	s.clock = c
}

// Run executes the job immediately, then on every tick until the context is
// cancelled. It blocks; callers run it in a goroutine per job.
func (s *Scheduler) Run(ctx context.Context, name string, job Job) {
	s.runOnce(ctx, name, job)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopping", "job", name)
			return
		case <-ticker.Chan():
			s.runOnce(ctx, name, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, name string, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Job panicked, resuming at next tick", "job", name, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := job(ctx); err != nil {
		s.logger.Error("Job failed", "job", name, "error", err)
	}
}
