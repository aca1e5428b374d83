package reminder

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Store keeps every reminder in memory and mirrors the full set to a JSON
// snapshot file after each mutation. It is the single owner of reminder
// records; callers only ever see copies.
type Store struct {
	mu        sync.Mutex
	path      string
	reminders map[string]*Reminder
}

// Open loads the snapshot at path. A missing file yields an empty store.
// A corrupt file is logged and also yields an empty store rather than a
// fatal error, so a damaged snapshot never blocks startup.
func Open(path string) (*Store, error) {
	s := &Store{
		path:      path,
		reminders: make(map[string]*Reminder),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read reminders file: %w", err)
	}

	if err := json.Unmarshal(data, &s.reminders); err != nil {
		log.Printf("[store] Corrupt reminders file %s, starting empty: %v", path, err)
		s.reminders = make(map[string]*Reminder)
	}
	return s, nil
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Add inserts a reminder, assigns its identity if unset and persists the
// snapshot. The write error, if any, is returned but the reminder stays in
// memory either way.
func (s *Store) Add(r Reminder) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = s.nextIDLocked()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	rec := r
	s.reminders[rec.ID] = &rec

	if err := s.saveLocked(); err != nil {
		return rec.ID, fmt.Errorf("failed to persist reminder %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// nextIDLocked derives an identity from the creation instant at nanosecond
// resolution. Two adds inside the same nanosecond would still collide, so
// the candidate is bumped until it is free of the live set.
func (s *Store) nextIDLocked() string {
	n := time.Now().UTC().UnixNano()
	for {
		id := strconv.FormatInt(n, 10)
		if _, exists := s.reminders[id]; !exists {
			return id
		}
		n++
	}
}

// Remove deletes a reminder. Reports whether a record existed.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return false, nil
	}
	delete(s.reminders, id)

	if err := s.saveLocked(); err != nil {
		return true, fmt.Errorf("failed to persist removal of %s: %w", id, err)
	}
	return true, nil
}

// MarkCompleted marks a reminder completed and persists. Reports whether a
// record existed.
func (s *Store) MarkCompleted(id string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return false, nil
	}
	r.MarkCompleted(now)

	if err := s.saveLocked(); err != nil {
		return true, fmt.Errorf("failed to persist completion of %s: %w", id, err)
	}
	return true, nil
}

// Get returns a copy of the reminder with the given id.
func (s *Store) Get(id string) (Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return Reminder{}, false
	}
	return *r, true
}

// Upcoming returns up to limit pending reminders sorted by ascending due
// time. A limit of zero or less means no cap.
func (s *Store) Upcoming(limit int) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var upcoming []Reminder
	for _, r := range s.reminders {
		if !r.Completed {
			upcoming = append(upcoming, *r)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueTime.Before(upcoming[j].DueTime)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// Due returns copies of every pending reminder whose due time is at or
// before now.
func (s *Store) Due(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for _, r := range s.reminders {
		if r.IsDue(now) {
			due = append(due, *r)
		}
	}
	return due
}

// Apply runs fn against the live record under the store lock. It is the
// mediated mutation path for the scheduler's lifecycle transitions; it does
// not persist, so a batch of transitions can be flushed once. Reports
// whether the record existed.
func (s *Store) Apply(id string, fn func(*Reminder)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return false
	}
	fn(r)
	return true
}

// Flush persists the current snapshot.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// Len returns the number of stored reminders, completed included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// saveLocked writes the full snapshot to a temp file in the same directory
// and renames it over the target, so a crash mid-write never leaves a
// half-written file behind.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".reminders-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
