// Package tray implements the tray-style secondary observer: an
// independent poller that surfaces due reminders as toast-style alerts.
package tray

import (
	"log"
	"sync"
	"time"

	"github.com/AbhijeetKumar1505/Jarvis/internal/notify"
	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

// DefaultInterval is the watcher's poll cadence. The watcher is a
// convenience surface, so it scans less often than the scheduler loop.
const DefaultInterval = 30 * time.Second

// Watcher polls the store for due reminders alongside the scheduler loop.
// It shares the scheduler's dedup map, so between the two observers a
// reminder produces at most one user-visible notification per window. The
// watcher never applies lifecycle transitions; that is the loop's job.
type Watcher struct {
	store    *reminder.Store
	dedup    *notify.Deduper
	alerter  notify.Alerter
	interval time.Duration
	clock    func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a watcher over the given store, sharing the dedup map with
// the main dispatcher.
func New(store *reminder.Store, dedup *notify.Deduper, alerter notify.Alerter, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		store:    store,
		dedup:    dedup,
		alerter:  alerter,
		interval: interval,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// Start spawns the watcher goroutine. A no-op when already running.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.stop = make(chan struct{})
	w.done = make(chan struct{})

	log.Printf("[tray] Watching for due reminders every %s", w.interval)
	go w.run(w.stop, w.done)
}

// Stop halts the watcher and waits for the in-flight scan to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	stop, done := w.stop, w.done
	w.running = false
	w.mu.Unlock()

	close(stop)
	<-done
}

func (w *Watcher) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	for _, r := range w.store.Due(w.clock()) {
		if !w.dedup.Allow(r.ID) {
			continue
		}
		if err := w.alerter.Alert("Reminder", r.Text); err != nil {
			log.Printf("[tray] Alert failed for %s: %v", r.ID, err)
		}
	}
}
