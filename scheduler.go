package cadence

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cadence/pkg/clock"
	"github.com/dmitrymomot/cadence/pkg/schedule"
)

// dispatcher abstracts how a due job's callback is executed. The sync and
// async schedulers are the same Scheduler with a different dispatcher, not
// separate types.
type dispatcher interface {
	// dispatch runs the callback. The sync implementation blocks and
	// returns the callback's error; the async one hands the callback to a
	// goroutine and returns immediately.
	dispatch(ctx context.Context, j *Job) error
}

// syncDispatch runs callbacks inline, blocking the poll for their full
// duration. Errors surface to the RunPending caller.
type syncDispatch struct{}

func (syncDispatch) dispatch(ctx context.Context, j *Job) error {
	return j.callback(ctx)
}

// asyncDispatch runs each callback on its own goroutine. Dispatch order
// follows insertion order, but completions may interleave arbitrarily.
// Callback errors go to the scheduler's error handler.
type asyncDispatch struct {
	onError func(error)
}

func (d asyncDispatch) dispatch(ctx context.Context, j *Job) error {
	go func() {
		if err := j.callback(ctx); err != nil {
			d.onError(err)
		}
	}()
	return nil
}

// Scheduler owns an ordered collection of jobs and polls them against its
// clock. Jobs are visited in insertion order; the collection is owned
// exclusively by the scheduler and must not be mutated while a poll is in
// progress.
type Scheduler struct {
	jobs     []*Job
	clock    clock.Clock
	loc      *time.Location
	logger   *slog.Logger
	dispatch dispatcher
	onError  func(error)
}

// New creates a synchronous scheduler: RunPending blocks for the full
// duration of every due callback, in insertion order, with no overlap.
// Dates and times are interpreted in the local time zone unless
// WithLocation says otherwise.
func New(opts ...Option) *Scheduler {
	s := newScheduler(opts...)
	s.dispatch = syncDispatch{}
	return s
}

// NewAsync creates an asynchronous scheduler: RunPending dispatches each
// due callback to its own goroutine and returns without waiting, so a slow
// callback does not stall other jobs' checks. Callback errors are
// delivered to the handler configured with WithErrorHandler, or logged.
func NewAsync(opts ...Option) *Scheduler {
	s := newScheduler(opts...)
	s.dispatch = asyncDispatch{onError: s.onError}
	return s
}

func newScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clock.System(),
		loc:    time.Local,
		logger: noopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onError == nil {
		s.onError = func(err error) {
			s.logger.Error("job callback failed", slog.Any("error", err))
		}
	}
	return s
}

// now reads the scheduler's clock in its configured location.
func (s *Scheduler) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Every adds a new job firing on the given interval and returns it for
// builder chaining. Each call creates a distinct job; jobs are never
// deduplicated.
//
//	s.Every(schedule.Minutes(10)).Plus(30 * time.Second).Run(task)
//	s.Every(schedule.Days(1)).At("3:20 pm").Once().Run(task)
//	s.Every(schedule.OnWeekday(time.Tuesday)).At("14:20:17").
//	    AndEvery(schedule.OnWeekday(time.Thursday)).At("15:00").Run(task)
func (s *Scheduler) Every(iv schedule.Interval) *Job {
	j := newJob(s, iv)
	s.jobs = append(s.jobs, j)
	return j
}

// RunPending executes every job due at this instant. The due set is a
// snapshot against a single clock reading taken on entry: jobs that become
// due while callbacks run are picked up by the next call, never re-polled
// within this one.
//
// With the synchronous dispatcher the aggregate of all callback errors is
// returned (errors.Join); the scheduler neither retries nor disables a
// failing job. With the asynchronous dispatcher RunPending always returns
// nil and errors flow to the error handler.
func (s *Scheduler) RunPending(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := s.now()

	var errs []error
	for _, j := range s.jobs {
		if !j.pending(now) {
			continue
		}
		j.advance(now)
		s.logger.Debug("job dispatched",
			slog.String("job_id", j.id.String()),
			slog.Time("fired_at", now),
		)
		if err := s.dispatch.dispatch(ctx, j); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Remove deletes the job with the given ID from the collection and
// reports whether it was present. Removal is an explicit caller action and
// must not race a poll in progress.
func (s *Scheduler) Remove(id uuid.UUID) bool {
	for i, j := range s.jobs {
		if j.id == id {
			s.jobs = slices.Delete(s.jobs, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of jobs in the collection, exhausted ones
// included.
func (s *Scheduler) Len() int { return len(s.jobs) }
