// Package schedule computes occurrence instants for recurring cadences.
//
// The package is the pure, stateless half of the scheduler: given an
// [Interval] (optionally combined into a [Rule] with a time-of-day anchor
// and a fixed adjustment), it answers "when is the next valid firing after
// this reference time?" and the symmetric question for the previous one.
// It holds no clock and no job state, which keeps every computation a pure
// function of its inputs plus the reference time's location.
//
// # Intervals
//
// An Interval describes either a fixed cadence measured in whole units, or
// a weekday constraint:
//
//	schedule.Seconds(10)                 // every 10th second since the Unix epoch
//	schedule.Minutes(15)                 // every 15th minute since midnight
//	schedule.Hours(2)                    // every 2nd hour since midnight
//	schedule.Days(3)                     // every 3rd civil day
//	schedule.Weeks(2)                    // every 2nd Monday-based week
//	schedule.OnWeekday(time.Tuesday)     // every Tuesday
//	schedule.OnAnyWeekday()              // every Monday through Friday
//
// Duration intervals align to absolute multiples of the unit measured from
// a fixed epoch, not to "time since the previous firing". That alignment is
// what keeps a cadence drift-free when polling is irregular or callbacks
// are slow: the boundaries march forward on their own, and re-anchoring a
// computation at any boundary reproduces the same series.
//
// A unit count of zero is degenerate and resolves to "never": Next and
// Prev report ok == false instead of erroring or dividing by zero.
//
// # Rules
//
// A Rule layers two refinements over an interval:
//
//	rule := schedule.Rule{
//	    Interval: schedule.Days(1),
//	    At:       &schedule.TimeOfDay{Hour: 10},      // fire at 10:00
//	    Plus:     schedule.Adjustment(30 * time.Second), // shifted by 30s
//	}
//	next, ok := rule.Next(time.Now())
//
// The anchor constrains the firing to a wall-clock time on each cadence
// day; the adjustment shifts every computed occurrence by a fixed duration
// after the boundary has been chosen.
//
// # Time-of-day grammar
//
// [ParseTimeOfDay] accepts the fixed grammar "H:MM[:SS] [am|pm]": a 24-hour
// clock without a meridiem, a 12-hour clock with one. Anything else is
// rejected with an error wrapping [ErrInvalidTimeOfDay].
//
// # Encodings
//
// Interval, TimeOfDay and Adjustment marshal to stable JSON and YAML forms
// with fixed field names and variant tags, so schedules can be stored or
// transmitted:
//
//	{"unit":"minutes","count":10}
//	{"weekday":"tuesday"}
//	{"weekday":"any"}
package schedule
