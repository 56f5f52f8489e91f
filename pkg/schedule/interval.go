package schedule

import (
	"time"
)

// intervalKind discriminates the closed set of interval variants.
type intervalKind uint8

const (
	kindSeconds intervalKind = iota
	kindMinutes
	kindHours
	kindDays
	kindWeeks
	kindWeekday
	kindAnyWeekday
)

// secondsPerDay is the length of a civil day; minute- and hour-cadences
// align to multiples of their unit since the start of the reference day.
const secondsPerDay = 24 * 60 * 60

// Interval is an immutable description of a recurrence cadence: either a
// whole number of fixed units, or a weekday constraint. The zero value is
// Seconds(0), which never fires. Construct intervals with [Seconds],
// [Minutes], [Hours], [Days], [Weeks], [OnWeekday] or [OnAnyWeekday].
type Interval struct {
	kind  intervalKind
	count uint32
	day   time.Weekday
}

// Seconds returns a cadence firing at every n-th second boundary,
// measured from the Unix epoch.
func Seconds(n uint32) Interval { return Interval{kind: kindSeconds, count: n} }

// Minutes returns a cadence firing at every n-th minute boundary,
// measured from the start of the day.
func Minutes(n uint32) Interval { return Interval{kind: kindMinutes, count: n} }

// Hours returns a cadence firing at every n-th hour boundary,
// measured from the start of the day.
func Hours(n uint32) Interval { return Interval{kind: kindHours, count: n} }

// Days returns a cadence firing at midnight of every n-th civil day,
// counted from the Unix epoch.
func Days(n uint32) Interval { return Interval{kind: kindDays, count: n} }

// Weeks returns a cadence firing at midnight of the Monday starting every
// n-th week, with weeks counted from the Unix epoch.
func Weeks(n uint32) Interval { return Interval{kind: kindWeeks, count: n} }

// OnWeekday returns a cadence firing every week on the given weekday.
func OnWeekday(day time.Weekday) Interval { return Interval{kind: kindWeekday, day: day} }

// OnAnyWeekday returns a cadence firing every Monday through Friday.
func OnAnyWeekday() Interval { return Interval{kind: kindAnyWeekday} }

// Zero reports whether the interval is degenerate: a duration cadence with
// a zero unit count. Zero intervals never advance.
func (iv Interval) Zero() bool {
	switch iv.kind {
	case kindWeekday, kindAnyWeekday:
		return false
	default:
		return iv.count == 0
	}
}

// Next returns the earliest cadence boundary strictly after ref. The
// reference time is truncated to whole seconds first, so successive calls
// are stable regardless of the caller's clock resolution. For degenerate
// (zero-count) intervals Next reports ok == false.
func (iv Interval) Next(ref time.Time) (next time.Time, ok bool) {
	if iv.Zero() {
		return time.Time{}, false
	}
	ref = ref.Truncate(time.Second)

	switch iv.kind {
	case kindSeconds:
		p := int64(iv.count)
		sec := ref.Unix()
		return time.Unix(sec-floorMod(sec, p)+p, 0).In(ref.Location()), true

	case kindMinutes, kindHours:
		p := iv.periodSeconds()
		s := secondsIntoDay(ref)
		return ref.Add(time.Duration(p-s%p) * time.Second), true

	case kindDays:
		n := int64(iv.count)
		di := dayIndex(ref)
		return startOfDay(ref).AddDate(0, 0, int(n-floorMod(di, n))), true

	case kindWeeks:
		n := int64(iv.count)
		monday, weekIdx := weekOf(ref)
		return monday.AddDate(0, 0, int(7*(n-floorMod(weekIdx, n)))), true

	case kindWeekday:
		target := mondayBased(iv.day)
		dow := mondayBased(ref.Weekday())
		shift := (target-dow+6)%7 + 1 // 1..7, never today
		return startOfDay(ref).AddDate(0, 0, shift), true

	default: // kindAnyWeekday
		var shift int
		switch ref.Weekday() {
		case time.Friday:
			shift = 3
		case time.Saturday:
			shift = 2
		default:
			shift = 1
		}
		return startOfDay(ref).AddDate(0, 0, shift), true
	}
}

// Prev returns the latest cadence boundary strictly before ref, with the
// same truncation and degenerate-input behavior as [Interval.Next].
func (iv Interval) Prev(ref time.Time) (prev time.Time, ok bool) {
	if iv.Zero() {
		return time.Time{}, false
	}
	ref = ref.Truncate(time.Second)

	switch iv.kind {
	case kindWeekday:
		target := mondayBased(iv.day)
		dow := mondayBased(ref.Weekday())
		shift := (dow-target+6)%7 + 1 // 1..7, never today
		return startOfDay(ref).AddDate(0, 0, -shift), true

	case kindAnyWeekday:
		var shift int
		switch ref.Weekday() {
		case time.Sunday:
			shift = 2
		case time.Monday:
			shift = 3
		default:
			shift = 1
		}
		return startOfDay(ref).AddDate(0, 0, -shift), true

	default:
		b := iv.floorBoundary(ref)
		if !b.Before(ref) {
			b = iv.stepBack(b)
		}
		return b, true
	}
}

// floorBoundary returns the greatest cadence boundary at or before ref.
// Only defined for duration cadences; ref must already be truncated.
func (iv Interval) floorBoundary(ref time.Time) time.Time {
	switch iv.kind {
	case kindSeconds:
		p := int64(iv.count)
		sec := ref.Unix()
		return time.Unix(sec-floorMod(sec, p), 0).In(ref.Location())
	case kindMinutes, kindHours:
		p := iv.periodSeconds()
		s := secondsIntoDay(ref)
		return ref.Add(-time.Duration(s%p) * time.Second)
	case kindDays:
		di := dayIndex(ref)
		return startOfDay(ref).AddDate(0, 0, int(-floorMod(di, int64(iv.count))))
	default: // kindWeeks
		monday, weekIdx := weekOf(ref)
		return monday.AddDate(0, 0, int(-7*floorMod(weekIdx, int64(iv.count))))
	}
}

// stepBack moves one full cadence period earlier from a boundary instant.
func (iv Interval) stepBack(t time.Time) time.Time {
	switch iv.kind {
	case kindSeconds, kindMinutes, kindHours:
		return t.Add(-time.Duration(iv.periodSeconds()) * time.Second)
	case kindDays:
		return t.AddDate(0, 0, -int(iv.count))
	case kindWeeks:
		return t.AddDate(0, 0, -7*int(iv.count))
	case kindWeekday:
		return t.AddDate(0, 0, -7)
	default: // kindAnyWeekday
		if t.Weekday() == time.Monday {
			return t.AddDate(0, 0, -3)
		}
		return t.AddDate(0, 0, -1)
	}
}

// AddTo advances t by one plain cadence step: duration intervals add their
// unit span, weekday intervals move to the next matching date at midnight.
// Unlike [Interval.Next] the result is relative to t, not aligned to
// absolute boundaries; repeat windows use it to space sub-occurrences from
// the primary firing. Degenerate intervals report ok == false.
func (iv Interval) AddTo(t time.Time) (time.Time, bool) {
	if iv.Zero() {
		return time.Time{}, false
	}
	switch iv.kind {
	case kindSeconds, kindMinutes, kindHours:
		return t.Add(time.Duration(iv.periodSeconds()) * time.Second), true
	case kindDays:
		return t.AddDate(0, 0, int(iv.count)), true
	case kindWeeks:
		return t.AddDate(0, 0, 7*int(iv.count)), true
	default:
		return iv.Next(t)
	}
}

// periodSeconds returns the cadence period in seconds for second-, minute-
// and hour-based intervals.
func (iv Interval) periodSeconds() int64 {
	switch iv.kind {
	case kindMinutes:
		return int64(iv.count) * 60
	case kindHours:
		return int64(iv.count) * 3600
	default:
		return int64(iv.count)
	}
}

// anchorable reports whether combining the interval with a time-of-day
// anchor selects calendar days (day-or-coarser cadences and weekdays).
// Sub-day cadences still accept an anchor, but it is applied to the
// boundary's date, which rarely makes sense; see Rule.
func (iv Interval) anchorable() bool {
	switch iv.kind {
	case kindDays, kindWeeks, kindWeekday, kindAnyWeekday:
		return true
	default:
		return false
	}
}

// startOfDay returns midnight of t's civil date in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// secondsIntoDay returns the wall-clock seconds elapsed since midnight.
func secondsIntoDay(t time.Time) int64 {
	return int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
}

// dayIndex returns the civil day number of t's date, with day zero at
// 1970-01-01. The index is computed from the calendar date alone, so it is
// location-independent.
func dayIndex(t time.Time) int64 {
	y, m, d := t.Date()
	return floorDiv(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), secondsPerDay)
}

// weekOf returns midnight of the Monday starting t's week together with
// the Monday-based week number since the epoch.
func weekOf(t time.Time) (monday time.Time, weekIdx int64) {
	di := dayIndex(t)
	dow := floorMod(di+3, 7) // 1970-01-01 was a Thursday
	return startOfDay(t).AddDate(0, 0, int(-dow)), floorDiv(di+3, 7)
}

// mondayBased maps time.Weekday (Sunday == 0) to a Monday == 0 index.
func mondayBased(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
