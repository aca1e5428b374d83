package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	now := utc(2024, time.January, 1, 10, 0)

	tests := []struct {
		name         string
		input        string
		now          time.Time
		wantText     string
		wantDue      time.Time
		wantInterval *Recurrence
	}{
		{
			name:     "tomorrow with afternoon time",
			input:    "remind me to call mom tomorrow at 3pm",
			now:      now,
			wantText: "call mom",
			wantDue:  utc(2024, time.January, 2, 15, 0),
		},
		{
			name:         "daily recurrence with past time rolls forward",
			input:        "remind me every day at 8am to take my medicine",
			now:          utc(2024, time.January, 1, 9, 0),
			wantText:     "take my medicine",
			wantDue:      utc(2024, time.January, 2, 8, 0),
			wantInterval: &Recurrence{Unit: UnitDays, N: 1},
		},
		{
			name:     "future time stays today",
			input:    "remind me to call mom at 3pm",
			now:      now,
			wantText: "call mom",
			wantDue:  utc(2024, time.January, 1, 15, 0),
		},
		{
			name:     "past time rolls to next day",
			input:    "remind me to stretch at 9am",
			now:      now,
			wantText: "stretch",
			wantDue:  utc(2024, time.January, 2, 9, 0),
		},
		{
			name:     "24 hour clock with minutes",
			input:    "set a reminder for 15:30 to join the standup",
			now:      now,
			wantText: "join the standup",
			wantDue:  utc(2024, time.January, 1, 15, 30),
		},
		{
			name:     "12am maps to hour zero",
			input:    "remind me to check the backup at 12am",
			now:      now,
			wantText: "check the backup",
			wantDue:  utc(2024, time.January, 2, 0, 0),
		},
		{
			name:     "12pm stays noon",
			input:    "remind me to eat lunch at 12pm",
			now:      now,
			wantText: "eat lunch",
			wantDue:  utc(2024, time.January, 1, 12, 0),
		},
		{
			name:     "no time defaults to one hour from now",
			input:    "remind me to water the plants",
			now:      now,
			wantText: "water the plants",
			wantDue:  utc(2024, time.January, 1, 11, 0),
		},
		{
			name:         "weekly recurrence",
			input:        "remind me every week at 9:15am to file the report",
			now:          now,
			wantText:     "file the report",
			wantDue:      utc(2024, time.January, 2, 9, 15),
			wantInterval: &Recurrence{Unit: UnitWeeks, N: 1},
		},
		{
			name:         "monthly recurrence",
			input:        "remind me every month to pay rent at 11am",
			now:          now,
			wantText:     "pay rent",
			wantDue:      utc(2024, time.January, 1, 11, 0),
			wantInterval: &Recurrence{Unit: UnitMonths, N: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input, tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantDue, got.DueTime)
			assert.Equal(t, tt.wantInterval, got.Interval)
		})
	}
}

func TestParseFailures(t *testing.T) {
	now := utc(2024, time.January, 1, 10, 0)

	for _, input := range []string{
		"remind me to",
		"set a reminder",
		"that",
	} {
		_, ok := Parse(input, now)
		assert.False(t, ok, "expected parse failure for %q", input)
	}
}

func TestParseNeverSchedulesInPast(t *testing.T) {
	// Every parsed due time must be strictly after now regardless of the
	// hour mentioned.
	for hour := 0; hour < 24; hour++ {
		now := utc(2024, time.June, 15, hour, 30)
		got, ok := Parse("remind me to check in at 9am", now)
		require.True(t, ok)
		assert.True(t, got.DueTime.After(now),
			"due %s not after now %s", got.DueTime, now)
	}
}

func TestParseDeterministic(t *testing.T) {
	now := utc(2024, time.March, 3, 7, 45)
	a, okA := Parse("remind me daily at 6am to journal", now)
	b, okB := Parse("remind me daily at 6am to journal", now)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}
