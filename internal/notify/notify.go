// Package notify delivers due reminders to the user and suppresses
// duplicate notifications across concurrent observers.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

// Speaker renders text as speech.
type Speaker interface {
	Speak(text string) error
}

// Alerter shows a visual alert.
type Alerter interface {
	Alert(title, body string) error
}

// Deduper tracks the last notification instant per reminder identity.
// Both the scheduler loop and the tray watcher consult the same Deduper,
// so a reminder fires at most once per window no matter how many
// observers see it due.
type Deduper struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	clock  func() time.Time
}

// NewDeduper creates a dedup map with the given suppression window.
func NewDeduper(window time.Duration) *Deduper {
	return &Deduper{
		window: window,
		seen:   make(map[string]time.Time),
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// Allow reports whether a notification for id may fire now, and if so
// records the instant. Check and record are one atomic step so two
// observers racing on the same id cannot both pass.
func (d *Deduper) Allow(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock()
	if last, ok := d.seen[id]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[id] = now
	return true
}

// Dispatcher presents due reminders through the configured sinks.
type Dispatcher struct {
	dedup   *Deduper
	speaker Speaker
	alerter Alerter
}

// NewDispatcher wires the sinks behind the shared dedup map. Either sink
// may be nil.
func NewDispatcher(dedup *Deduper, speaker Speaker, alerter Alerter) *Dispatcher {
	return &Dispatcher{
		dedup:   dedup,
		speaker: speaker,
		alerter: alerter,
	}
}

// Notify shows and speaks the reminder unless a notification for the same
// identity fired within the dedup window. Sink failures are logged and
// swallowed: the due-time contract is about scheduling correctness, not
// delivery, so a failed presentation must not block the lifecycle
// transition.
func (d *Dispatcher) Notify(r reminder.Reminder) error {
	if !d.dedup.Allow(r.ID) {
		log.Printf("[notify] Suppressed duplicate notification for %s", r.ID)
		return nil
	}

	title := "Reminder: " + r.Text
	body := r.DueTime.Format("2006-01-02 15:04") + "\n" + r.Text

	if d.alerter != nil {
		if err := d.alerter.Alert(title, body); err != nil {
			log.Printf("[notify] Alert failed for %s: %v", r.ID, err)
		}
	}
	if d.speaker != nil {
		if err := d.speaker.Speak("Reminder: " + r.Text); err != nil {
			log.Printf("[notify] Speech failed for %s: %v", r.ID, err)
		}
	}
	return nil
}
