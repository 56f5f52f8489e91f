package schedule

import "errors"

// Schedule errors.
var (
	// ErrInvalidTimeOfDay is returned when a textual time-of-day does not
	// match the "H:MM[:SS] [am|pm]" grammar or is out of range.
	ErrInvalidTimeOfDay = errors.New("schedule: invalid time of day")

	// ErrInvalidInterval is returned when decoding an interval with an
	// unknown unit or weekday tag.
	ErrInvalidInterval = errors.New("schedule: invalid interval encoding")

	// ErrInvalidAdjustment is returned when decoding an adjustment that is
	// not a valid duration string.
	ErrInvalidAdjustment = errors.New("schedule: invalid adjustment encoding")
)
