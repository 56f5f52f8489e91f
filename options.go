package cadence

import (
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/cadence/pkg/clock"
)

// Option configures a scheduler.
type Option func(*Scheduler)

// WithClock substitutes the time source. Tests pass a clock.Fake to drive
// the scheduler deterministically. Defaults to the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLocation sets the time zone used to interpret dates, anchors and
// cadence boundaries. Defaults to the local time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger for dispatch and watch-loop events.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithErrorHandler sets the failure channel for callback errors that have
// no caller to return to: async dispatch and the background watch loop.
// Defaults to logging through the scheduler's logger.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.onError = fn
		}
	}
}

// noopLogger discards all records.
func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
