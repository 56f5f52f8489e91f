package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Encoded forms are part of the package contract: field names and variant
// tags are fixed so schedules can be stored or transmitted.
//
//	{"unit":"minutes","count":10}   duration cadence
//	{"weekday":"tuesday"}           specific weekday
//	{"weekday":"any"}               any weekday (Monday through Friday)

var unitNames = map[intervalKind]string{
	kindSeconds: "seconds",
	kindMinutes: "minutes",
	kindHours:   "hours",
	kindDays:    "days",
	kindWeeks:   "weeks",
}

var unitKinds = map[string]intervalKind{
	"seconds": kindSeconds,
	"minutes": kindMinutes,
	"hours":   kindHours,
	"days":    kindDays,
	"weeks":   kindWeeks,
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// anyWeekdayTag encodes the OnAnyWeekday variant.
const anyWeekdayTag = "any"

// intervalWire is the combined decode shape for both variant forms.
type intervalWire struct {
	Unit    string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Count   uint32 `json:"count,omitempty" yaml:"count,omitempty"`
	Weekday string `json:"weekday,omitempty" yaml:"weekday,omitempty"`
}

func (iv Interval) wire() any {
	switch iv.kind {
	case kindWeekday:
		return struct {
			Weekday string `json:"weekday" yaml:"weekday"`
		}{Weekday: weekdayName(iv.day)}
	case kindAnyWeekday:
		return struct {
			Weekday string `json:"weekday" yaml:"weekday"`
		}{Weekday: anyWeekdayTag}
	default:
		return struct {
			Unit  string `json:"unit" yaml:"unit"`
			Count uint32 `json:"count" yaml:"count"`
		}{Unit: unitNames[iv.kind], Count: iv.count}
	}
}

func (iv *Interval) fromWire(w intervalWire) error {
	switch {
	case w.Weekday == anyWeekdayTag:
		*iv = OnAnyWeekday()
	case w.Weekday != "":
		day, ok := weekdayNames[w.Weekday]
		if !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidInterval, w.Weekday)
		}
		*iv = OnWeekday(day)
	default:
		kind, ok := unitKinds[w.Unit]
		if !ok {
			return fmt.Errorf("%w: unknown unit %q", ErrInvalidInterval, w.Unit)
		}
		*iv = Interval{kind: kind, count: w.Count}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(iv.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var w intervalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInterval, err)
	}
	return iv.fromWire(w)
}

// MarshalYAML implements yaml.Marshaler.
func (iv Interval) MarshalYAML() (any, error) {
	return iv.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (iv *Interval) UnmarshalYAML(node *yaml.Node) error {
	var w intervalWire
	if err := node.Decode(&w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInterval, err)
	}
	return iv.fromWire(w)
}

// String returns a human-readable form of the interval.
func (iv Interval) String() string {
	switch iv.kind {
	case kindWeekday:
		return "every " + weekdayName(iv.day)
	case kindAnyWeekday:
		return "every weekday"
	default:
		return fmt.Sprintf("every %d %s", iv.count, unitNames[iv.kind])
	}
}

func weekdayName(d time.Weekday) string {
	for name, day := range weekdayNames {
		if day == d {
			return name
		}
	}
	return "unknown"
}

// MarshalJSON encodes the time as a quoted "HH:MM:SS" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a quoted time-of-day string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the time as an "HH:MM:SS" string.
func (t TimeOfDay) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a time-of-day string.
func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON encodes the adjustment as a quoted Go duration string.
func (a Adjustment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a quoted Go duration string.
func (a *Adjustment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdjustment, err)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdjustment, err)
	}
	*a = Adjustment(d)
	return nil
}

// MarshalYAML encodes the adjustment as a Go duration string.
func (a Adjustment) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes a Go duration string.
func (a *Adjustment) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdjustment, err)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdjustment, err)
	}
	*a = Adjustment(d)
	return nil
}
