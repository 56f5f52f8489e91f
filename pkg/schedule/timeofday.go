package schedule

import (
	"fmt"
	"time"
)

// timeOfDayLayouts is the fixed "H:MM[:SS] [am|pm]" grammar: 24-hour forms
// without a meridiem, 12-hour forms with one. Order matters: the
// with-seconds layouts must be tried first.
var timeOfDayLayouts = []string{
	"15:04:05",
	"3:04:05 PM",
	"15:04",
	"3:04 PM",
}

// TimeOfDay is a wall-clock time anchoring a cadence to fire at that clock
// time on each cadence day. The zero value is midnight.
type TimeOfDay struct {
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
	Second int `json:"second" yaml:"second"`
}

// ParseTimeOfDay parses s using the "H:MM[:SS] [am|pm]" grammar. Hours are
// 24-hour without a meridiem and 12-hour with one; the meridiem may be
// upper or lower case. Malformed input is rejected with an error wrapping
// [ErrInvalidTimeOfDay].
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		h, m, sec := t.Clock()
		return TimeOfDay{Hour: h, Minute: m, Second: sec}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q does not match \"H:MM[:SS] [am|pm]\"", ErrInvalidTimeOfDay, s)
}

// Valid reports whether all components are within clock range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 &&
		t.Minute >= 0 && t.Minute < 60 &&
		t.Second >= 0 && t.Second < 60
}

// String formats the time as "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// on combines the wall-clock time with the civil date of day, in day's
// location.
func (t TimeOfDay) on(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, day.Location())
}
