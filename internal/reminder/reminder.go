package reminder

import (
	"encoding/json"
	"fmt"
	"time"
)

// Recurrence interval units.
const (
	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
)

// Recurrence describes how a recurring reminder's due time advances
// after it fires: every N days, weeks or calendar months.
type Recurrence struct {
	Unit string
	N    int
}

// Days returns a recurrence of every n days.
func Days(n int) Recurrence { return Recurrence{Unit: UnitDays, N: n} }

// Weeks returns a recurrence of every n weeks.
func Weeks(n int) Recurrence { return Recurrence{Unit: UnitWeeks, N: n} }

// Months returns a recurrence of every n calendar months.
func Months(n int) Recurrence { return Recurrence{Unit: UnitMonths, N: n} }

// Valid reports whether the recurrence has a known unit and a positive count.
func (rc Recurrence) Valid() bool {
	switch rc.Unit {
	case UnitDays, UnitWeeks, UnitMonths:
		return rc.N > 0
	}
	return false
}

// Next returns the due time advanced by one recurrence step. Month steps
// clamp the day of month to the target month's length, so Jan 31 plus one
// month lands on Feb 28 (or Feb 29 in a leap year).
func (rc Recurrence) Next(t time.Time) time.Time {
	switch rc.Unit {
	case UnitDays:
		return t.AddDate(0, 0, rc.N)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*rc.N)
	case UnitMonths:
		return addMonthsClamped(t, rc.N)
	}
	return t
}

// Describe returns a human phrasing like "every day" or "every 2 weeks".
func (rc Recurrence) Describe() string {
	singular := map[string]string{
		UnitDays:   "day",
		UnitWeeks:  "week",
		UnitMonths: "month",
	}[rc.Unit]
	if singular == "" {
		return ""
	}
	if rc.N == 1 {
		return "every " + singular
	}
	return fmt.Sprintf("every %d %ss", rc.N, singular)
}

// MarshalJSON writes the interval in its on-disk shape, a single-key
// object such as {"days": 1}.
func (rc Recurrence) MarshalJSON() ([]byte, error) {
	if !rc.Valid() {
		return nil, fmt.Errorf("invalid recurrence %q", rc.Unit)
	}
	return json.Marshal(map[string]int{rc.Unit: rc.N})
}

// UnmarshalJSON reads the single-key object form and rejects anything
// that does not name exactly one known unit.
func (rc *Recurrence) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("recurring_interval must have exactly one unit, got %d", len(raw))
	}
	for unit, n := range raw {
		parsed := Recurrence{Unit: unit, N: n}
		if !parsed.Valid() {
			return fmt.Errorf("invalid recurring_interval %s=%d", unit, n)
		}
		*rc = parsed
	}
	return nil
}

// addMonthsClamped adds n calendar months without the normalization
// time.AddDate performs (which would turn Jan 31 + 1 month into Mar 3).
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	anchor := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	anchor = anchor.AddDate(0, n, 0)
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Reminder represents a single scheduled reminder.
type Reminder struct {
	ID            string      `json:"id"`
	Text          string      `json:"text"`
	DueTime       time.Time   `json:"due_time"`
	CreatedAt     time.Time   `json:"created_at"`
	Completed     bool        `json:"completed"`
	Recurring     bool        `json:"recurring"`
	Interval      *Recurrence `json:"recurring_interval,omitempty"`
	LastTriggered *time.Time  `json:"last_triggered,omitempty"`
}

// IsDue reports whether the reminder should fire at the given instant.
// Completed reminders are never due.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Completed && !r.DueTime.After(now)
}

// MarkCompleted marks the reminder as fired and done. A second call is a
// no-op and leaves LastTriggered untouched.
func (r *Reminder) MarkCompleted(now time.Time) {
	if r.Completed {
		return
	}
	r.Completed = true
	ts := now
	r.LastTriggered = &ts
}

// Reschedule advances a recurring reminder's due time by its interval and
// stamps LastTriggered. The due time only ever moves forward. Returns
// false for non-recurring reminders.
func (r *Reminder) Reschedule(now time.Time) bool {
	if !r.Recurring || r.Interval == nil {
		return false
	}
	ts := now
	r.LastTriggered = &ts
	r.DueTime = r.Interval.Next(r.DueTime)
	r.Completed = false
	return true
}
