package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// pollInterval is how often a task's loop checks whether it is due.
const pollInterval = time.Second

type task struct {
	name     string
	interval time.Duration
	fn       func(context.Context) error
}

// Scheduler runs named tasks at fixed intervals. Each task gets its own
// goroutine that polls due-ness once per second; a task that overruns its
// interval is simply late, never queued twice.
type Scheduler struct {
	tasks []*task
	wg    sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule registers a task to run every interval. Must be called before
// Start.
func (s *Scheduler) Schedule(name string, interval time.Duration, fn func(context.Context) error) {
	s.tasks = append(s.tasks, &task{name: name, interval: interval, fn: fn})
}

// Start launches every scheduled task. The tasks stop when ctx is
// cancelled; Wait blocks until they have all exited.
func (s *Scheduler) Start(ctx context.Context) {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go func(t *task) {
			defer s.wg.Done()
			s.run(ctx, t)
		}(t)
	}
}

// Wait blocks until all task goroutines have exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, t *task) {
	slog.Info("task scheduled", "task", t.name, "interval", t.interval)

	next := time.Now().Add(t.interval)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("task stopped", "task", t.name)
			return
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}
			if err := t.fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("task failed", "task", t.name, "error", err)
			}
			// schedule from completion, so a slow run doesn't stack
			next = time.Now().Add(t.interval)
		}
	}
}

// RequiredLongTicks returns how many short-interval ticks make up one full
// interval. The full interval is rounded to the nearest exact multiple of
// the short interval first, so folding the full cadence into the short
// timer never drifts. A full interval that rounds below one short interval
// clamps to 1, making every tick a full sync; returning 0 there would leave
// the counter unable to ever reach the ratio again.
func RequiredLongTicks(short, full time.Duration) int {
	remainder := full % short
	if remainder < short-remainder {
		full -= remainder
	} else {
		full += short - remainder
	}
	ticks := int(full / short)
	if ticks < 1 {
		return 1
	}
	return ticks
}

// TickSync folds the full-sync cadence into the short-sync timer: every
// requiredLongTicks-th tick runs a full reconciliation, every other tick a
// bounded one. Running a single timer instead of two keeps the cadences
// from racing or double-firing when both are due at once.
type TickSync struct {
	syncer            *Syncer
	shortLimit        int
	requiredLongTicks int
	ticks             int
}

// NewTickSync prepares the fold for the given cadences. The tick counter
// starts at the ratio, so the very first tick performs a full sync and
// establishes a known-good baseline.
func NewTickSync(syncer *Syncer, short, full time.Duration, shortLimit int) *TickSync {
	n := RequiredLongTicks(short, full)
	return &TickSync{
		syncer:            syncer,
		shortLimit:        shortLimit,
		requiredLongTicks: n,
		ticks:             n,
	}
}

// Tick performs one scheduled sync: full when the counter has run its
// course, bounded otherwise.
func (t *TickSync) Tick(ctx context.Context) error {
	if t.ticks == t.requiredLongTicks {
		t.ticks = 1
		return t.syncer.Sync(ctx, 0)
	}
	t.ticks++
	return t.syncer.Sync(ctx, t.shortLimit)
}
