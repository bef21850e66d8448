package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "raw poller export format",
			input: "2023-01-25 18:13:33.341098 UTC",
			want:  time.Date(2023, 1, 25, 18, 13, 33, 341098000, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2023-01-25T18:13:33Z",
			want:  time.Date(2023, 1, 25, 18, 13, 33, 0, time.UTC),
		},
		{
			name:  "plain datetime",
			input: "2023-01-25 18:13:33",
			want:  time.Date(2023, 1, 25, 18, 13, 33, 0, time.UTC),
		},
		{name: "garbage", input: "not-a-time", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "date only", input: "2023-01-25", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Timestamp(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}

func TestCivilTime(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00:00", want: 0},
		{name: "end of day", input: "23:59:59", want: 23*3600 + 59*60 + 59},
		{name: "morning", input: "09:30:15", want: 9*3600 + 30*60 + 15},
		{name: "missing seconds", input: "09:30", wantErr: true},
		{name: "out of range hour", input: "24:00:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CivilTime(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	day, err := DayOfWeek("0")
	require.NoError(t, err)
	assert.Equal(t, 0, day)

	day, err = DayOfWeek("6")
	require.NoError(t, err)
	assert.Equal(t, 6, day)

	for _, bad := range []string{"7", "-1", "monday", ""} {
		_, err := DayOfWeek(bad)
		assert.ErrorIs(t, err, ErrMalformedInput, "input %q", bad)
	}
}

func TestStatus(t *testing.T) {
	for _, ok := range []string{"active", "inactive"} {
		got, err := Status(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, got)
	}

	_, err := Status("unknown")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestMondayWeekday(t *testing.T) {
	assert.Equal(t, 0, MondayWeekday(time.Monday))
	assert.Equal(t, 5, MondayWeekday(time.Saturday))
	assert.Equal(t, 6, MondayWeekday(time.Sunday))
}
