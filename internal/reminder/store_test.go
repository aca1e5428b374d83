package reminder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "reminders.json")
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestOpenCorruptFile(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	// The store must still be usable after a corrupt boot.
	_, err = s.Add(Reminder{Text: "recovered", DueTime: utc(2024, time.June, 1, 8, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := s.Add(Reminder{Text: "tick", DueTime: utc(2024, time.June, 1, 8, 0)})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, s.Len())
}

func TestRoundTrip(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	rc := Days(1)
	fired := utc(2024, time.January, 2, 8, 0)
	id1, err := s.Add(Reminder{
		Text:          "take my medicine",
		DueTime:       utc(2024, time.January, 3, 8, 0),
		Recurring:     true,
		Interval:      &rc,
		LastTriggered: &fired,
	})
	require.NoError(t, err)
	id2, err := s.Add(Reminder{Text: "call mom", DueTime: utc(2024, time.January, 2, 15, 0)})
	require.NoError(t, err)

	reloaded, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Len())

	for _, id := range []string{id1, id2} {
		want, ok := s.Get(id)
		require.True(t, ok)
		got, ok := reloaded.Get(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestRemove(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)

	id, err := s.Add(Reminder{Text: "call mom", DueTime: utc(2024, time.January, 2, 15, 0)})
	require.NoError(t, err)

	found, err := s.Remove(id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Remove(id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMarkCompletedPersists(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	id, err := s.Add(Reminder{Text: "call mom", DueTime: utc(2024, time.January, 2, 15, 0)})
	require.NoError(t, err)

	now := utc(2024, time.January, 2, 15, 1)
	found, err := s.MarkCompleted(id, now)
	require.NoError(t, err)
	require.True(t, found)

	reloaded, err := Open(path)
	require.NoError(t, err)
	r, ok := reloaded.Get(id)
	require.True(t, ok)
	assert.True(t, r.Completed)
	require.NotNil(t, r.LastTriggered)
	assert.Equal(t, now, *r.LastTriggered)

	found, err = s.MarkCompleted("no-such-id", now)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpcomingOrderAndLimit(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)

	due := []time.Time{
		utc(2024, time.January, 5, 8, 0),
		utc(2024, time.January, 2, 8, 0),
		utc(2024, time.January, 9, 8, 0),
		utc(2024, time.January, 1, 8, 0),
	}
	for i, d := range due {
		_, err := s.Add(Reminder{Text: "task", DueTime: d})
		require.NoError(t, err, "add %d", i)
	}

	// A completed reminder must not show up.
	doneID, err := s.Add(Reminder{Text: "done", DueTime: utc(2024, time.January, 1, 6, 0)})
	require.NoError(t, err)
	_, err = s.MarkCompleted(doneID, utc(2024, time.January, 1, 6, 0))
	require.NoError(t, err)

	upcoming := s.Upcoming(0)
	require.Len(t, upcoming, 4)
	for i := 1; i < len(upcoming); i++ {
		assert.False(t, upcoming[i].DueTime.Before(upcoming[i-1].DueTime))
	}

	limited := s.Upcoming(2)
	require.Len(t, limited, 2)
	assert.Equal(t, utc(2024, time.January, 1, 8, 0), limited[0].DueTime)
	assert.Equal(t, utc(2024, time.January, 2, 8, 0), limited[1].DueTime)
}

func TestDueFiltering(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)

	now := utc(2024, time.January, 2, 12, 0)

	pastID, err := s.Add(Reminder{Text: "past", DueTime: now.Add(-time.Hour)})
	require.NoError(t, err)
	exactID, err := s.Add(Reminder{Text: "exact", DueTime: now})
	require.NoError(t, err)
	_, err = s.Add(Reminder{Text: "future", DueTime: now.Add(time.Hour)})
	require.NoError(t, err)

	doneID, err := s.Add(Reminder{Text: "done", DueTime: now.Add(-2 * time.Hour)})
	require.NoError(t, err)
	_, err = s.MarkCompleted(doneID, now)
	require.NoError(t, err)

	due := s.Due(now)
	ids := make(map[string]bool)
	for _, r := range due {
		ids[r.ID] = true
	}
	assert.True(t, ids[pastID])
	assert.True(t, ids[exactID])
	assert.Len(t, due, 2)
}

func TestApplyAndFlush(t *testing.T) {
	path := tempStorePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	rc := Days(1)
	id, err := s.Add(Reminder{
		Text:      "medicine",
		DueTime:   utc(2024, time.January, 2, 8, 0),
		Recurring: true,
		Interval:  &rc,
	})
	require.NoError(t, err)

	now := utc(2024, time.January, 2, 8, 5)
	ok := s.Apply(id, func(r *Reminder) {
		r.Reschedule(now)
	})
	require.True(t, ok)

	// Apply alone does not persist.
	beforeFlush, err := Open(path)
	require.NoError(t, err)
	r, _ := beforeFlush.Get(id)
	assert.Equal(t, utc(2024, time.January, 2, 8, 0), r.DueTime)

	require.NoError(t, s.Flush())

	afterFlush, err := Open(path)
	require.NoError(t, err)
	r, _ = afterFlush.Get(id)
	assert.Equal(t, utc(2024, time.January, 3, 8, 0), r.DueTime)

	assert.False(t, s.Apply("no-such-id", func(*Reminder) {}))
}

func TestSnapshotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "reminders.json"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.Add(Reminder{Text: "task", DueTime: utc(2024, time.June, 1, 8, 0)})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".reminders-"),
			"leftover temp file %s", e.Name())
	}
}

func TestCallersGetCopies(t *testing.T) {
	s, err := Open(tempStorePath(t))
	require.NoError(t, err)

	id, err := s.Add(Reminder{Text: "original", DueTime: utc(2024, time.June, 1, 8, 0)})
	require.NoError(t, err)

	got, ok := s.Get(id)
	require.True(t, ok)
	got.Text = "mutated outside the store"

	again, _ := s.Get(id)
	assert.Equal(t, "original", again.Text)
}
