package cadence

import "errors"

// Scheduler errors.
var (
	// ErrNilCallback is returned by Job.Run when no callback is given.
	ErrNilCallback = errors.New("cadence: nil callback")

	// ErrInvalidPollInterval is returned by Scheduler.Watch when the poll
	// interval is not positive.
	ErrInvalidPollInterval = errors.New("cadence: poll interval must be positive")

	// ErrInvalidRunPolicy is returned when decoding a run policy with an
	// unknown mode tag.
	ErrInvalidRunPolicy = errors.New("cadence: invalid run policy encoding")
)
