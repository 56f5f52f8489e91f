package cadence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cadence/pkg/schedule"
)

// Callback is the work a job performs on each firing. The error it returns
// is never caught, wrapped or retried by the scheduler: the sync scheduler
// hands it back to the RunPending caller, the async one delivers it to the
// configured error handler. A failing callback is not disabled and keeps
// its place in the schedule.
type Callback func(ctx context.Context) error

// repeatWindow is a bounded burst of sub-occurrences following a primary
// firing: after the primary fires, the entry keeps firing every interval
// step until times additional firings have happened, then falls back to
// the primary cadence.
type repeatWindow struct {
	interval schedule.Interval
	times    int
}

// entry is one independent cadence bound to a job: a rule, its own run
// policy, an optional repeat window, and the scheduling state that
// advances as the entry fires.
type entry struct {
	rule        schedule.Rule
	policy      RunPolicy
	repeat      *repeatWindow
	nextRun     time.Time
	repeatsLeft int
}

// due reports whether the entry's next firing instant has been reached.
// Entries with no computed next run (degenerate intervals, or jobs whose
// schedule never started) are never due.
func (e *entry) due(now time.Time) bool {
	return !e.nextRun.IsZero() && !e.nextRun.After(now)
}

// start computes the entry's first firing instant and arms the repeat
// window.
func (e *entry) start(now time.Time) {
	if next, ok := e.rule.Next(now); ok {
		e.nextRun = next
	}
	if e.repeat != nil {
		e.repeatsLeft = e.repeat.times
	}
}

// advance moves the entry past the firing it was due for. Inside a repeat
// window the next instant is spaced from the previous scheduled instant by
// the sub-interval, skipping instants already in the past; otherwise the
// primary cadence is recomputed using the entry's own scheduled instant as
// the reference, not the observed poll time, so boundaries march forward
// on their cadence regardless of when the poll caught them.
func (e *entry) advance(now time.Time) {
	if e.repeat != nil && e.repeatsLeft > 0 {
		if next, ok := e.nextSubOccurrence(now); ok {
			e.repeatsLeft--
			e.nextRun = next
			return
		}
		e.repeatsLeft = 0 // degenerate sub-interval, revert to the primary cadence
	}
	if e.repeat != nil {
		e.repeatsLeft = e.repeat.times
	}
	ref := e.nextRun
	if ref.IsZero() {
		ref = now
	}
	if next, ok := e.rule.Next(ref); ok {
		e.nextRun = next
	} else {
		e.nextRun = time.Time{}
	}
}

// nextSubOccurrence finds the first repeat-window instant strictly after
// now, stepping from the entry's scheduled instant.
func (e *entry) nextSubOccurrence(now time.Time) (time.Time, bool) {
	next := e.nextRun
	if next.IsZero() {
		next = now
	}
	for {
		stepped, ok := e.repeat.interval.AddTo(next)
		if !ok || !stepped.After(next) {
			return time.Time{}, false
		}
		next = stepped
		if next.After(now) {
			return next, true
		}
	}
}

// Job binds one or more schedule entries to a callback. Create jobs with
// [Scheduler.Every], refine them with the chainable builder methods, and
// finish with [Job.Run]; a job without a callback is never due.
//
// Each entry chained with [Job.AndEvery] is evaluated independently and
// carries its own run policy, so a Tuesday-and-Thursday job with a
// countdown on the Thursday entry keeps firing on Tuesdays. Call
// [Job.SharedPolicy] to make all entries draw down a single policy
// instead.
//
// A job is mutated only by its owning scheduler during polling; it must
// not be reconfigured once polling has started.
type Job struct {
	id       uuid.UUID
	sched    *Scheduler
	entries  []*entry
	callback Callback
	lastRun  time.Time
	shared   RunPolicy
	isShared bool
	err      error
}

// newJob creates a job with a single entry for the given interval.
func newJob(s *Scheduler, iv schedule.Interval) *Job {
	return &Job{
		id:      uuid.New(),
		sched:   s,
		entries: []*entry{{rule: schedule.Rule{Interval: iv}}},
		shared:  Forever(),
	}
}

// ID returns the job's identifier, used for logging and removal.
func (j *Job) ID() uuid.UUID { return j.id }

// last returns the most recently added entry; builder methods refine it.
func (j *Job) last() *entry { return j.entries[len(j.entries)-1] }

// fail records the first builder error; Run reports it and leaves the job
// inert.
func (j *Job) fail(err error) {
	if j.err == nil {
		j.err = err
	}
}

// At anchors the current entry to a wall-clock time given in the
// "H:MM[:SS] [am|pm]" grammar. A malformed value makes Run fail with a
// descriptive error.
func (j *Job) At(s string) *Job {
	t, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		j.fail(err)
		return j
	}
	return j.AtTime(t)
}

// AtTime anchors the current entry to a structured wall-clock time.
func (j *Job) AtTime(t schedule.TimeOfDay) *Job {
	if !t.Valid() {
		j.fail(fmt.Errorf("%w: %s out of range", schedule.ErrInvalidTimeOfDay, t))
		return j
	}
	j.last().rule.At = &t
	return j
}

// Plus shifts every occurrence of the current entry by d. Non-positive
// adjustments are ignored.
func (j *Job) Plus(d time.Duration) *Job {
	if d > 0 {
		j.last().rule.Plus = schedule.Adjustment(d)
	}
	return j
}

// AndEvery chains an additional independent cadence onto the job. The new
// entry starts with its own Forever policy; subsequent At, Plus, Once,
// Count and RepeatingEvery calls refine it.
func (j *Job) AndEvery(iv schedule.Interval) *Job {
	j.entries = append(j.entries, &entry{rule: schedule.Rule{Interval: iv}})
	return j
}

// Once limits the current entry (or the shared policy, after
// SharedPolicy) to a single execution.
func (j *Job) Once() *Job {
	return j.setPolicy(Once())
}

// Count limits the current entry (or the shared policy, after
// SharedPolicy) to n executions.
func (j *Job) Count(n uint32) *Job {
	return j.setPolicy(Countdown(n))
}

// Forever removes any execution limit from the current entry (or the
// shared policy, after SharedPolicy). This is the default.
func (j *Job) Forever() *Job {
	return j.setPolicy(Forever())
}

func (j *Job) setPolicy(p RunPolicy) *Job {
	if j.isShared {
		j.shared = p
	} else {
		j.last().policy = p
	}
	return j
}

// SharedPolicy makes every entry of the job draw down one run policy
// rather than each entry keeping its own. Call it before Once or Count;
// with several entries due in the same poll, the shared policy is
// consumed once per callback invocation, not once per entry.
func (j *Job) SharedPolicy() *Job {
	j.isShared = true
	return j
}

// RepeatingEvery declares a repeat window on the current entry: after the
// primary occurrence fires, keep firing every iv. Complete the window with
// [Repeating.Times].
func (j *Job) RepeatingEvery(iv schedule.Interval) *Repeating {
	return &Repeating{job: j, interval: iv}
}

// Repeating is the intermediate builder state between RepeatingEvery and
// Times.
type Repeating struct {
	job      *Job
	interval schedule.Interval
}

// Times sets the number of additional firings after each primary
// occurrence. A value below one is the same as not declaring a repeat
// window at all.
func (r *Repeating) Times(n int) *Job {
	if n >= 1 {
		r.job.last().repeat = &repeatWindow{interval: r.interval, times: n}
	}
	return r.job
}

// Run binds the callback and computes every entry's first firing instant
// relative to the scheduler's current time, completing the builder chain.
// Any error accumulated while building the schedule is returned and the
// job stays inert.
func (j *Job) Run(fn Callback) error {
	return j.start(fn, j.sched.now())
}

// start binds the callback and arms every entry relative to now.
func (j *Job) start(fn Callback, now time.Time) error {
	if j.err != nil {
		return j.err
	}
	if fn == nil {
		return ErrNilCallback
	}
	j.callback = fn
	for _, e := range j.entries {
		e.start(now)
	}
	return nil
}

// exhausted reports whether the entry's governing policy is spent.
func (j *Job) exhausted(e *entry) bool {
	if j.isShared {
		return j.shared.Exhausted()
	}
	return e.policy.Exhausted()
}

// pending reports whether the job is due: its lifecycle is still active
// and at least one entry has reached its firing instant.
func (j *Job) pending(now time.Time) bool {
	if j.callback == nil {
		return false
	}
	for _, e := range j.entries {
		if !j.exhausted(e) && e.due(now) {
			return true
		}
	}
	return false
}

// advance moves every due entry past the current firing and applies run
// policy consumption. It is called by the owning scheduler immediately
// before the callback is dispatched.
func (j *Job) advance(now time.Time) {
	fired := false
	for _, e := range j.entries {
		if j.exhausted(e) || !e.due(now) {
			continue
		}
		e.advance(now)
		fired = true
		if !j.isShared {
			e.policy = e.policy.Consume()
		}
	}
	if fired {
		if j.isShared {
			j.shared = j.shared.Consume()
		}
		j.lastRun = now
	}
}

// NextRun returns the earliest upcoming firing instant across the job's
// active entries, and ok == false when the job will never fire again.
func (j *Job) NextRun() (next time.Time, ok bool) {
	for _, e := range j.entries {
		if j.exhausted(e) || e.nextRun.IsZero() {
			continue
		}
		if !ok || e.nextRun.Before(next) {
			next, ok = e.nextRun, true
		}
	}
	return next, ok
}

// LastRun returns the instant of the most recent firing, and ok == false
// when the job has never fired.
func (j *Job) LastRun() (last time.Time, ok bool) {
	if j.lastRun.IsZero() {
		return time.Time{}, false
	}
	return j.lastRun, true
}
