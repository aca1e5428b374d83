package reminder

import (
	"fmt"
	"time"
)

// Service is the command-facing surface the rest of the assistant talks
// to. It composes the parser with one Store; there is no ambient global
// instance, every caller holds an explicit handle.
type Service struct {
	store *Store
}

// NewService binds a service to its store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying store for components that poll it directly.
func (s *Service) Store() *Store { return s.store }

// AddFromText parses free text and stores the resulting reminder.
// ok is false when the text yields no actionable reminder content; the
// caller is expected to ask the user to rephrase. err reports a
// persistence failure, in which case the reminder is still live in memory.
func (s *Service) AddFromText(raw string, now time.Time) (Reminder, bool, error) {
	parsed, ok := Parse(raw, now)
	if !ok {
		return Reminder{}, false, nil
	}

	r := Reminder{
		Text:      parsed.Text,
		DueTime:   parsed.DueTime,
		CreatedAt: now.UTC(),
		Recurring: parsed.Interval != nil,
		Interval:  parsed.Interval,
	}
	id, err := s.store.Add(r)
	if err != nil {
		return Reminder{}, true, err
	}

	added, _ := s.store.Get(id)
	return added, true, nil
}

// AddStructured stores a reminder with explicit fields, bypassing the
// parser. Unlike the parsed path it accepts any due time, past ones
// included; such a reminder is due on the very next poll.
func (s *Service) AddStructured(text string, due time.Time, interval *Recurrence) (Reminder, error) {
	if text == "" {
		return Reminder{}, fmt.Errorf("reminder text is required")
	}
	if interval != nil && !interval.Valid() {
		return Reminder{}, fmt.Errorf("invalid recurrence interval %s=%d", interval.Unit, interval.N)
	}

	r := Reminder{
		Text:      text,
		DueTime:   due.UTC(),
		CreatedAt: time.Now().UTC(),
		Recurring: interval != nil,
		Interval:  interval,
	}
	id, err := s.store.Add(r)
	if err != nil {
		return Reminder{}, err
	}

	added, _ := s.store.Get(id)
	return added, nil
}

// Cancel removes a reminder. Reports whether it existed.
func (s *Service) Cancel(id string) (bool, error) {
	return s.store.Remove(id)
}

// Complete marks a reminder completed. Reports whether it existed.
func (s *Service) Complete(id string, now time.Time) (bool, error) {
	return s.store.MarkCompleted(id, now)
}

// Upcoming lists pending reminders ordered by due time.
func (s *Service) Upcoming(limit int) []Reminder {
	return s.store.Upcoming(limit)
}

// DueNow lists reminders due at the given instant.
func (s *Service) DueNow(now time.Time) []Reminder {
	return s.store.Due(now)
}

// Confirmation phrases a just-created reminder back to the user, recurrence
// frequency included.
func Confirmation(r Reminder) string {
	var freq string
	if r.Recurring && r.Interval != nil {
		freq = " " + r.Interval.Describe()
	}
	when := r.DueTime.Format("03:04 PM on Monday, January 02")
	return fmt.Sprintf("I'll remind you to %s%s at %s.", r.Text, freq, when)
}
