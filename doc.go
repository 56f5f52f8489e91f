// Package cadence is an in-process job scheduler with a builder DSL for
// recurring work: "every 10 minutes", "every Tuesday at 14:20", "daily at
// 10:00, repeating every 30 minutes, 6 times".
//
// Jobs are polled, not timer-driven: the scheduler decides at each poll
// which jobs are due and executes them, and cadence boundaries are aligned
// to absolute multiples of the unit rather than "time since last run", so
// irregular polling and slow callbacks do not make a schedule drift.
//
// # Quick Start
//
// Create a scheduler, describe jobs with the builder chain, and poll:
//
//	s := cadence.New()
//
//	err := s.Every(schedule.Minutes(10)).Plus(30 * time.Second).
//	    Run(func(ctx context.Context) error {
//	        return refreshCache(ctx)
//	    })
//
//	err = s.Every(schedule.Days(1)).At("10:00 am").
//	    RepeatingEvery(schedule.Minutes(30)).Times(6).
//	    Run(sendDigest) // 10:00 through 13:00, then tomorrow again
//
//	err = s.Every(schedule.OnWeekday(time.Tuesday)).At("14:20:17").
//	    AndEvery(schedule.OnWeekday(time.Thursday)).At("15:00").
//	    Run(syncReports)
//
//	for {
//	    if err := s.RunPending(ctx); err != nil {
//	        log.Println(err) // callback errors, joined
//	    }
//	    time.Sleep(100 * time.Millisecond)
//	}
//
// Or let the scheduler poll itself on a background goroutine:
//
//	w, err := s.Watch(ctx, 100*time.Millisecond)
//	defer w.Stop()
//
// # Run Policies
//
// By default a job fires forever. Once() and Count(n) bound it:
//
//	s.Every(schedule.Days(1)).At("3:20 pm").Once().Run(migrate)
//	s.Every(schedule.OnAnyWeekday()).At("12:00").Count(10).Run(remind)
//
// Exhausted jobs stay in the collection but are never polled due again.
//
// # Synchronous and Asynchronous Execution
//
// cadence.New runs due callbacks inline: RunPending blocks through every
// callback, in insertion order, and returns their joined errors.
// cadence.NewAsync dispatches each callback to its own goroutine: dispatch
// order is still insertion order, completions are unordered, and errors
// flow to the handler set with WithErrorHandler (or the logger).
//
// # Deterministic Time
//
// The scheduler never reads ambient global time directly; it consults its
// clock capability, so tests substitute a fake:
//
//	c := clock.NewFake(time.Date(2020, 6, 16, 9, 59, 0, 0, time.UTC))
//	s := cadence.New(cadence.WithClock(c), cadence.WithLocation(time.UTC))
//	c.Advance(time.Minute)
//	_ = s.RunPending(ctx)
//
// # Error Handling
//
// Schedule construction errors (a malformed At string, a nil callback)
// are returned by Job.Run and leave the job inert. Callback errors are
// never caught, retried or used to disable a job; they propagate to the
// RunPending caller or the configured error handler. A zero-count interval
// is not an error: it simply never fires.
package cadence
