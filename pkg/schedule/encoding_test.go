package schedule_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/cadence/pkg/schedule"
)

func TestIntervalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval schedule.Interval
		encoded  string
	}{
		{"duration cadence", schedule.Minutes(10), `{"unit":"minutes","count":10}`},
		{"weekly cadence", schedule.Weeks(2), `{"unit":"weeks","count":2}`},
		{"specific weekday", schedule.OnWeekday(time.Tuesday), `{"weekday":"tuesday"}`},
		{"any weekday", schedule.OnAnyWeekday(), `{"weekday":"any"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.interval)
			require.NoError(t, err)
			assert.JSONEq(t, tt.encoded, string(data))

			var decoded schedule.Interval
			require.NoError(t, json.Unmarshal([]byte(tt.encoded), &decoded))
			assert.Equal(t, tt.interval, decoded)
		})
	}
}

func TestIntervalJSONInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		`{"unit":"fortnights","count":2}`,
		`{"weekday":"caturday"}`,
		`{}`,
		`"every day"`,
	} {
		var iv schedule.Interval
		err := json.Unmarshal([]byte(in), &iv)
		require.Error(t, err, "input %s", in)
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	}
}

func TestIntervalYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	for _, iv := range []schedule.Interval{
		schedule.Seconds(30),
		schedule.Days(3),
		schedule.OnWeekday(time.Friday),
		schedule.OnAnyWeekday(),
	} {
		data, err := yaml.Marshal(iv)
		require.NoError(t, err)

		var decoded schedule.Interval
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, iv, decoded)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	t.Parallel()

	tod := schedule.TimeOfDay{Hour: 15, Minute: 20, Second: 17}

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"15:20:17"`, string(data))

	var decoded schedule.TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tod, decoded)

	// The lenient parse grammar applies when decoding.
	require.NoError(t, json.Unmarshal([]byte(`"3:20 pm"`), &decoded))
	assert.Equal(t, schedule.TimeOfDay{Hour: 15, Minute: 20}, decoded)

	err = json.Unmarshal([]byte(`"noon"`), &decoded)
	assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
}

func TestAdjustmentJSON(t *testing.T) {
	t.Parallel()

	a := schedule.Adjustment(90 * time.Second)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))

	var decoded schedule.Adjustment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, a, decoded)

	err = json.Unmarshal([]byte(`"soon"`), &decoded)
	assert.ErrorIs(t, err, schedule.ErrInvalidAdjustment)
}

func TestRuleJSONRoundTrip(t *testing.T) {
	t.Parallel()

	r := schedule.Rule{
		Interval: schedule.Days(1),
		At:       at("10:00"),
		Plus:     schedule.Adjustment(30 * time.Second),
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"interval":{"unit":"days","count":1},"at":"10:00:00","plus":"30s"}`, string(data))

	var decoded schedule.Rule
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestRuleYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	r := schedule.Rule{Interval: schedule.OnWeekday(time.Tuesday), At: at("14:20:17")}

	data, err := yaml.Marshal(r)
	require.NoError(t, err)

	var decoded schedule.Rule
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}
