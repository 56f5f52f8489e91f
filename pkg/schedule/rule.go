package schedule

import "time"

// Adjustment is a fixed extra duration added to every occurrence a rule
// computes. It shifts the occurrence; it does not change which cadence
// boundary is chosen.
type Adjustment time.Duration

// Duration returns the adjustment as a time.Duration.
func (a Adjustment) Duration() time.Duration { return time.Duration(a) }

// String formats the adjustment as a Go duration string.
func (a Adjustment) String() string { return time.Duration(a).String() }

// Rule is one complete cadence description: an interval, an optional
// time-of-day anchor, and an optional adjustment. Rules are value types;
// a job owns one rule per schedule entry and never shares them.
type Rule struct {
	Interval Interval   `json:"interval" yaml:"interval"`
	At       *TimeOfDay `json:"at,omitempty" yaml:"at,omitempty"`
	Plus     Adjustment `json:"plus,omitempty" yaml:"plus,omitempty"`
}

// Next returns the earliest occurrence of the rule strictly after ref, or
// ok == false when the interval is degenerate and never fires.
//
// Without an anchor this is the interval's next boundary. With an anchor,
// the candidate is the cadence day on or after ref's own day, at the
// anchor's clock time; when that candidate is not strictly after ref the
// rule advances one full cadence. Weekday intervals are the exception:
// they always select the nearest matching date on or after tomorrow, so a
// Tuesday rule referenced on a Tuesday resolves to the following week.
// Anchoring a sub-day cadence collapses it to a daily firing at the anchor
// time. The adjustment, if any, is added last.
func (r Rule) Next(ref time.Time) (time.Time, bool) {
	if r.Interval.Zero() {
		return time.Time{}, false
	}
	ref = ref.Truncate(time.Second)

	if r.At == nil {
		next, _ := r.Interval.Next(ref)
		return next.Add(r.Plus.Duration()), true
	}

	var cand time.Time
	switch {
	case r.Interval.kind == kindWeekday || r.Interval.kind == kindAnyWeekday:
		day, _ := r.Interval.Next(ref)
		cand = r.At.on(day)
	case r.Interval.anchorable():
		// The current cycle's day is a valid candidate as long as the
		// anchored instant is still ahead; in particular a midnight anchor
		// on a daily cadence must resolve to the very next midnight, not
		// the one after.
		cand = r.At.on(r.Interval.floorBoundary(ref))
		if !cand.After(ref) {
			day, _ := r.Interval.Next(ref)
			cand = r.At.on(day)
		}
	default:
		cand = r.At.on(ref)
		if !cand.After(ref) {
			cand = r.At.on(startOfDay(ref).AddDate(0, 0, 1))
		}
	}
	return cand.Add(r.Plus.Duration()), true
}

// Prev returns the latest occurrence of the rule strictly before ref,
// mirroring [Rule.Next]: anchored rules step back one cadence at a time
// until the anchored, adjusted instant falls strictly before ref, and
// weekday intervals never consider ref's own day.
func (r Rule) Prev(ref time.Time) (time.Time, bool) {
	if r.Interval.Zero() {
		return time.Time{}, false
	}
	ref = ref.Truncate(time.Second)

	if r.At == nil {
		prev, _ := r.Interval.Prev(ref)
		cand := prev.Add(r.Plus.Duration())
		for !cand.Before(ref) {
			prev = r.Interval.stepBack(prev)
			cand = prev.Add(r.Plus.Duration())
		}
		return cand, true
	}

	var day time.Time
	back := func(d time.Time) time.Time { return d.AddDate(0, 0, -1) }
	switch {
	case r.Interval.kind == kindWeekday || r.Interval.kind == kindAnyWeekday:
		day, _ = r.Interval.Prev(ref)
		back = r.Interval.stepBack
	case r.Interval.anchorable():
		day = r.Interval.floorBoundary(ref)
		back = r.Interval.stepBack
	default:
		day = startOfDay(ref)
	}
	cand := r.At.on(day).Add(r.Plus.Duration())
	for !cand.Before(ref) {
		day = back(day)
		cand = r.At.on(day).Add(r.Plus.Duration())
	}
	return cand, true
}
