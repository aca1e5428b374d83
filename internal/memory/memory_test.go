package memory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Record("reminder_set", "call mom"))
	require.NoError(t, s.Record("reminder_fired", "call mom"))
	require.NoError(t, s.Record("command", "/list"))

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for _, a := range got {
		assert.NotEmpty(t, a.ID)
		assert.False(t, a.CreatedAt.IsZero())
	}

	kinds := make(map[string]int)
	for _, a := range got {
		kinds[a.Kind]++
	}
	assert.Equal(t, map[string]int{"reminder_set": 1, "reminder_fired": 1, "command": 1}, kinds)
}

func TestRecentRespectsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record("command", "/due"))
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestForDay(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Record("reminder_set", "water the plants"))

	today, err := s.ForDay(time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "water the plants", today[0].Details)

	yesterday, err := s.ForDay(time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, yesterday)
}

func TestDailySummary(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Record("reminder_fired", "take my medicine"))
	require.NoError(t, s.Record("reminder_fired", "call mom"))

	md, err := s.DailySummary(time.Now().UTC())
	require.NoError(t, err)
	assert.Contains(t, md, "# Daily Summary for")
	assert.Contains(t, md, "**reminder_fired**: 2")
	assert.Contains(t, md, "take my medicine")
	assert.Contains(t, md, "call mom")
}

func TestDailySummaryEmptyDay(t *testing.T) {
	s := newTestStore(t)

	md, err := s.DailySummary(time.Now().UTC())
	require.NoError(t, err)
	assert.Contains(t, md, "No recorded activity.")
}
