// Package clock abstracts the current-time lookup so schedulers can be
// driven by a deterministic time source in tests.
//
// Production code uses the system clock:
//
//	c := clock.System()
//
// Tests inject a fake and move it by hand:
//
//	c := clock.NewFake(time.Date(2020, 6, 16, 8, 0, 0, 0, time.UTC))
//	c.Advance(45 * time.Minute)
//
// The clock is read-only and safe to share across any number of consumers.
package clock
