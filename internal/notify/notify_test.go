package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

type recordingSpeaker struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (s *recordingSpeaker) Speak(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
	return s.err
}

type recordingAlerter struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (a *recordingAlerter) Alert(title, body string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, title)
	return a.err
}

func testReminder() reminder.Reminder {
	return reminder.Reminder{
		ID:      "1704204000000000000",
		Text:    "call mom",
		DueTime: time.Date(2024, time.January, 2, 15, 0, 0, 0, time.UTC),
	}
}

func TestDeduperSuppressesWithinWindow(t *testing.T) {
	now := time.Date(2024, time.January, 2, 15, 0, 0, 0, time.UTC)
	d := NewDeduper(5 * time.Minute)
	d.clock = func() time.Time { return now }

	assert.True(t, d.Allow("a"))
	assert.False(t, d.Allow("a"), "second attempt inside the window")

	now = now.Add(4 * time.Minute)
	assert.False(t, d.Allow("a"))

	now = now.Add(time.Minute)
	assert.True(t, d.Allow("a"), "window elapsed")
	assert.False(t, d.Allow("a"), "a passing Allow re-arms the window")
}

func TestDeduperTracksIdentitiesIndependently(t *testing.T) {
	d := NewDeduper(5 * time.Minute)

	assert.True(t, d.Allow("a"))
	assert.True(t, d.Allow("b"))
	assert.False(t, d.Allow("a"))
	assert.False(t, d.Allow("b"))
}

func TestDeduperAtomicUnderConcurrency(t *testing.T) {
	d := NewDeduper(5 * time.Minute)

	const racers = 32
	var passed int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.Allow("contested") {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), passed, "exactly one racer passes")
}

func TestDispatcherNotifiesBothSinks(t *testing.T) {
	speaker := &recordingSpeaker{}
	alerter := &recordingAlerter{}
	d := NewDispatcher(NewDeduper(5*time.Minute), speaker, alerter)

	require.NoError(t, d.Notify(testReminder()))

	require.Len(t, speaker.lines, 1)
	assert.Equal(t, "Reminder: call mom", speaker.lines[0])
	require.Len(t, alerter.titles, 1)
	assert.Equal(t, "Reminder: call mom", alerter.titles[0])
}

func TestDispatcherSuppressesDuplicate(t *testing.T) {
	speaker := &recordingSpeaker{}
	d := NewDispatcher(NewDeduper(5*time.Minute), speaker, nil)

	r := testReminder()
	require.NoError(t, d.Notify(r))
	require.NoError(t, d.Notify(r))

	assert.Len(t, speaker.lines, 1, "duplicate inside the window is silent")
}

func TestDispatcherSwallowsSinkFailures(t *testing.T) {
	speaker := &recordingSpeaker{err: errors.New("no audio device")}
	alerter := &recordingAlerter{err: errors.New("no display")}
	d := NewDispatcher(NewDeduper(5*time.Minute), speaker, alerter)

	assert.NoError(t, d.Notify(testReminder()))
}

func TestDispatcherNilSinks(t *testing.T) {
	d := NewDispatcher(NewDeduper(5*time.Minute), nil, nil)
	assert.NoError(t, d.Notify(testReminder()))
}
