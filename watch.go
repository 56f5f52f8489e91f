package cadence

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Watcher controls a background polling loop started by
// [Scheduler.Watch]. Stopping it cancels the loop only; callbacks already
// dispatched run to completion under their own failure model.
type Watcher struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

// Watch starts a background goroutine calling RunPending immediately and
// then every `every` until the watcher is stopped or ctx is canceled.
// Errors returned by RunPending go to the scheduler's error handler.
//
// The scheduler must not be mutated (Every, Remove) while the watch loop
// is running.
//
// If the caller lets the watcher become unreachable without calling Stop,
// a runtime cleanup cancels the loop so no orphaned goroutine outlives the
// handle; unlike Stop, that path signals termination without waiting for
// the loop to acknowledge it.
//
// Small values of every (100ms to a few seconds) keep both firing latency
// and Stop latency low.
func (s *Scheduler) Watch(ctx context.Context, every time.Duration) (*Watcher, error) {
	if every <= 0 {
		return nil, ErrInvalidPollInterval
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	s.logger.Info("scheduler watch started",
		slog.Duration("poll_interval", every),
		slog.Int("jobs", len(s.jobs)),
	)
	g.Go(func() error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			if err := s.RunPending(ctx); err != nil {
				s.onError(err)
			}
			select {
			case <-ctx.Done():
				s.logger.Info("scheduler watch stopped")
				return nil
			case <-ticker.C:
			}
		}
	})

	w := &Watcher{cancel: cancel, group: g}
	// The cleanup must not capture w itself, or it would never run.
	runtime.AddCleanup(w, func(cancel context.CancelFunc) { cancel() }, cancel)
	return w, nil
}

// Stop requests cooperative termination and blocks until the loop has
// acknowledged it. Safe to call more than once.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.group.Wait()
}
