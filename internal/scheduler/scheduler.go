// Package scheduler runs the background polling loop that fires due
// reminders and applies their lifecycle transitions.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

const (
	// DefaultInterval is the cadence between poll iterations.
	DefaultInterval = 10 * time.Second
	// DefaultBackoff is the pause after a failed iteration.
	DefaultBackoff = 60 * time.Second
)

// Notifier presents a due reminder to the user.
type Notifier interface {
	Notify(r reminder.Reminder) error
}

// Recorder receives a note each time a reminder fires. Used to feed the
// activity memory; may be nil.
type Recorder interface {
	Record(kind, details string) error
}

// Loop is the reminder engine's single background worker. It polls the
// store on a fixed cadence, dispatches due reminders and either completes
// or reschedules them.
type Loop struct {
	store    *reminder.Store
	notifier Notifier
	recorder Recorder
	interval time.Duration
	backoff  time.Duration
	clock    func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval overrides the poll cadence.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) { l.interval = d }
}

// WithBackoff overrides the pause after a failed iteration.
func WithBackoff(d time.Duration) Option {
	return func(l *Loop) { l.backoff = d }
}

// WithClock overrides the wall-clock source.
func WithClock(clock func() time.Time) Option {
	return func(l *Loop) { l.clock = clock }
}

// WithRecorder attaches an activity recorder.
func WithRecorder(rec Recorder) Option {
	return func(l *Loop) { l.recorder = rec }
}

// New creates a Loop bound to its store and notifier.
func New(store *reminder.Store, notifier Notifier, opts ...Option) *Loop {
	l := &Loop{
		store:    store,
		notifier: notifier,
		interval: DefaultInterval,
		backoff:  DefaultBackoff,
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start spawns the polling goroutine. A no-op when already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}
	l.running = true
	l.stop = make(chan struct{})
	l.done = make(chan struct{})

	log.Printf("[scheduler] Started. Interval: %s", l.interval)
	go l.run(l.stop, l.done)
}

// Stop asks the loop to finish and waits for the in-flight iteration to
// complete before returning. Stopping never interrupts an in-progress
// dispatch. A no-op when not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	stop, done := l.stop, l.done
	l.running = false
	l.mu.Unlock()

	close(stop)
	<-done
	log.Println("[scheduler] Stopped.")
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// First check happens immediately, then on the ticker cadence.
	if err := l.tick(); err != nil {
		if !l.pause(stop, err) {
			return
		}
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.tick(); err != nil {
				if !l.pause(stop, err) {
					return
				}
			}
		}
	}
}

// pause logs the iteration failure and backs off. Returns false when the
// loop was stopped during the pause.
func (l *Loop) pause(stop <-chan struct{}, err error) bool {
	log.Printf("[scheduler] Iteration failed: %v (backing off %s)", err, l.backoff)
	select {
	case <-stop:
		return false
	case <-time.After(l.backoff):
		return true
	}
}

// tick processes one batch of due reminders and persists the store once
// afterwards. Within a batch reminders are handled in the order the store
// returned them; no relative priority is implied.
func (l *Loop) tick() error {
	now := l.clock()
	due := l.store.Due(now)
	if len(due) == 0 {
		return nil
	}

	for _, r := range due {
		log.Printf("[scheduler] Reminder due: %s (%s)", r.ID, r.Text)

		if err := l.notifier.Notify(r); err != nil {
			// Presentation failure never blocks the transition.
			log.Printf("[scheduler] Notify failed for %s: %v", r.ID, err)
		}

		l.store.Apply(r.ID, func(rec *reminder.Reminder) {
			if rec.Recurring {
				rec.Reschedule(now)
			} else {
				rec.MarkCompleted(now)
			}
		})

		if l.recorder != nil {
			if err := l.recorder.Record("reminder_fired", r.Text); err != nil {
				log.Printf("[scheduler] Activity record failed: %v", err)
			}
		}
	}

	if err := l.store.Flush(); err != nil {
		return fmt.Errorf("failed to persist reminder batch: %w", err)
	}
	return nil
}
