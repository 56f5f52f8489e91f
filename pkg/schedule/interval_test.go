package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cadence/pkg/schedule"
)

// base is a Tuesday afternoon; the civil day number and the Monday-based
// week number of this date are both divisible by 2 and 3, which makes
// boundary expectations below easy to verify by hand.
var base = time.Date(2018, 9, 4, 14, 22, 13, 0, time.UTC)

func utc(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestIntervalNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval schedule.Interval
		ref      time.Time
		want     time.Time
	}{
		{"seconds", schedule.Seconds(5), base, utc(2018, 9, 4, 14, 22, 15)},
		{"seconds at boundary", schedule.Seconds(5), utc(2018, 9, 4, 14, 22, 15), utc(2018, 9, 4, 14, 22, 20)},
		{"minutes", schedule.Minutes(15), base, utc(2018, 9, 4, 14, 30, 0)},
		{"minutes at boundary", schedule.Minutes(15), utc(2018, 9, 4, 14, 30, 0), utc(2018, 9, 4, 14, 45, 0)},
		{"hours", schedule.Hours(2), base, utc(2018, 9, 4, 16, 0, 0)},
		{"days", schedule.Days(2), base, utc(2018, 9, 6, 0, 0, 0)},
		{"days at midnight boundary", schedule.Days(2), utc(2018, 9, 4, 0, 0, 0), utc(2018, 9, 6, 0, 0, 0)},
		{"three days", schedule.Days(3), base, utc(2018, 9, 7, 0, 0, 0)},
		{"weeks", schedule.Weeks(1), base, utc(2018, 9, 10, 0, 0, 0)},
		{"two weeks", schedule.Weeks(2), base, utc(2018, 9, 17, 0, 0, 0)},
		{"monday", schedule.OnWeekday(time.Monday), base, utc(2018, 9, 10, 0, 0, 0)},
		{"monday from monday midnight", schedule.OnWeekday(time.Monday), utc(2018, 9, 10, 0, 0, 0), utc(2018, 9, 17, 0, 0, 0)},
		{"wednesday", schedule.OnWeekday(time.Wednesday), base, utc(2018, 9, 5, 0, 0, 0)},
		{"same weekday skips a week", schedule.OnWeekday(time.Tuesday), base, utc(2018, 9, 11, 0, 0, 0)},
		{"any weekday from tuesday", schedule.OnAnyWeekday(), base, utc(2018, 9, 5, 0, 0, 0)},
		{"any weekday from friday", schedule.OnAnyWeekday(), utc(2018, 9, 7, 10, 0, 0), utc(2018, 9, 10, 0, 0, 0)},
		{"any weekday from saturday", schedule.OnAnyWeekday(), utc(2018, 9, 8, 10, 0, 0), utc(2018, 9, 10, 0, 0, 0)},
		{"any weekday from sunday", schedule.OnAnyWeekday(), utc(2018, 9, 9, 10, 0, 0), utc(2018, 9, 10, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.interval.Next(tt.ref)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.ref), "next must be strictly after the reference")
		})
	}
}

func TestIntervalPrev(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval schedule.Interval
		ref      time.Time
		want     time.Time
	}{
		{"seconds", schedule.Seconds(5), base, utc(2018, 9, 4, 14, 22, 10)},
		{"seconds at boundary", schedule.Seconds(5), utc(2018, 9, 4, 14, 22, 15), utc(2018, 9, 4, 14, 22, 10)},
		{"minutes", schedule.Minutes(15), base, utc(2018, 9, 4, 14, 15, 0)},
		{"minutes at boundary", schedule.Minutes(15), utc(2018, 9, 4, 14, 30, 0), utc(2018, 9, 4, 14, 15, 0)},
		{"hours", schedule.Hours(2), base, utc(2018, 9, 4, 14, 0, 0)},
		{"days", schedule.Days(2), base, utc(2018, 9, 4, 0, 0, 0)},
		{"days at midnight boundary", schedule.Days(2), utc(2018, 9, 4, 0, 0, 0), utc(2018, 9, 2, 0, 0, 0)},
		{"weeks", schedule.Weeks(1), base, utc(2018, 9, 3, 0, 0, 0)},
		{"monday", schedule.OnWeekday(time.Monday), base, utc(2018, 9, 3, 0, 0, 0)},
		{"same weekday skips today", schedule.OnWeekday(time.Tuesday), base, utc(2018, 8, 28, 0, 0, 0)},
		{"any weekday from monday", schedule.OnAnyWeekday(), utc(2018, 9, 10, 12, 0, 0), utc(2018, 9, 7, 0, 0, 0)},
		{"any weekday from sunday", schedule.OnAnyWeekday(), utc(2018, 9, 9, 12, 0, 0), utc(2018, 9, 7, 0, 0, 0)},
		{"any weekday from tuesday", schedule.OnAnyWeekday(), base, utc(2018, 9, 3, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.interval.Prev(tt.ref)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Before(tt.ref), "prev must be strictly before the reference")
		})
	}
}

func TestIntervalZeroCount(t *testing.T) {
	t.Parallel()

	for _, iv := range []schedule.Interval{
		schedule.Seconds(0),
		schedule.Minutes(0),
		schedule.Hours(0),
		schedule.Days(0),
		schedule.Weeks(0),
	} {
		assert.True(t, iv.Zero())

		_, ok := iv.Next(base)
		assert.False(t, ok, "zero-count interval must never advance")
		_, ok = iv.Prev(base)
		assert.False(t, ok)
		_, ok = iv.AddTo(base)
		assert.False(t, ok)
	}

	assert.False(t, schedule.OnWeekday(time.Friday).Zero())
	assert.False(t, schedule.OnAnyWeekday().Zero())
}

func TestIntervalNextTruncatesSubSeconds(t *testing.T) {
	t.Parallel()

	ref := base.Add(512 * time.Millisecond)

	for _, iv := range []schedule.Interval{
		schedule.Seconds(5),
		schedule.Minutes(15),
		schedule.Hours(2),
		schedule.Days(2),
	} {
		next, ok := iv.Next(ref)
		require.True(t, ok)
		assert.Zero(t, next.Nanosecond(), "computed instants carry no sub-second component")

		prev, ok := iv.Prev(ref)
		require.True(t, ok)
		assert.Zero(t, prev.Nanosecond())
	}
}

func TestIntervalNextDriftFree(t *testing.T) {
	t.Parallel()

	// Re-anchoring at each successive boundary reproduces the same series
	// as stepping the first boundary forward by the period directly.
	iv := schedule.Minutes(15)
	cur, ok := iv.Next(base)
	require.True(t, ok)

	direct := cur
	for range 20 {
		next, ok := iv.Next(cur)
		require.True(t, ok)
		direct = direct.Add(15 * time.Minute)
		assert.Equal(t, direct, next)
		cur = next
	}
}

func TestIntervalAddTo(t *testing.T) {
	t.Parallel()

	t.Run("duration step is relative, not aligned", func(t *testing.T) {
		t.Parallel()

		got, ok := schedule.Minutes(45).AddTo(utc(2020, 6, 16, 8, 0, 0))
		require.True(t, ok)
		assert.Equal(t, utc(2020, 6, 16, 8, 45, 0), got)
	})

	t.Run("day step keeps the clock time", func(t *testing.T) {
		t.Parallel()

		got, ok := schedule.Days(3).AddTo(utc(2018, 9, 4, 10, 0, 0))
		require.True(t, ok)
		assert.Equal(t, utc(2018, 9, 7, 10, 0, 0), got)
	})

	t.Run("weekday step lands on the next matching midnight", func(t *testing.T) {
		t.Parallel()

		got, ok := schedule.OnWeekday(time.Friday).AddTo(base)
		require.True(t, ok)
		assert.Equal(t, utc(2018, 9, 7, 0, 0, 0), got)
	})
}

func TestIntervalString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "every 10 minutes", schedule.Minutes(10).String())
	assert.Equal(t, "every tuesday", schedule.OnWeekday(time.Tuesday).String())
	assert.Equal(t, "every weekday", schedule.OnAnyWeekday().String())
}
