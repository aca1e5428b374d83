// Package memory provides SQLite-backed storage for assistant activity
// history: reminders set, reminders fired, commands run.
package memory

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Activity is one recorded assistant event.
type Activity struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// maxActivities caps retained history; older rows are pruned on insert.
const maxActivities = 1000

// Store provides SQLite-backed storage for activities.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// activities table exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS activities (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			details    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new activity and prunes history beyond the cap.
func (s *Store) Record(kind, details string) error {
	now := time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO activities (id, kind, details, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), kind, details, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	_, err = s.db.Exec(`
		DELETE FROM activities WHERE id NOT IN (
			SELECT id FROM activities ORDER BY created_at DESC LIMIT ?
		)
	`, maxActivities)
	if err != nil {
		return fmt.Errorf("failed to prune activities: %w", err)
	}
	return nil
}

// Recent returns the newest activities, most recent first.
func (s *Store) Recent(limit int) ([]Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, details, created_at
		FROM activities ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ForDay returns every activity recorded on the given calendar day (UTC),
// oldest first.
func (s *Store) ForDay(day time.Time) ([]Activity, error) {
	prefix := day.UTC().Format("2006-01-02")

	rows, err := s.db.Query(`
		SELECT id, kind, details, created_at
		FROM activities WHERE created_at LIKE ? ORDER BY created_at ASC
	`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query day %s: %w", prefix, err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// DailySummary renders the day's activity as a markdown document.
func (s *Store) DailySummary(day time.Time) (string, error) {
	activities, err := s.ForDay(day)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Summary for %s\n\n", day.UTC().Format("Monday, January 2 2006"))

	if len(activities) == 0 {
		b.WriteString("No recorded activity.\n")
		return b.String(), nil
	}

	counts := make(map[string]int)
	for _, a := range activities {
		counts[a.Kind]++
	}
	b.WriteString("## Totals\n\n")
	for kind, n := range counts {
		fmt.Fprintf(&b, "- **%s**: %d\n", kind, n)
	}

	b.WriteString("\n## Timeline\n\n")
	for _, a := range activities {
		fmt.Fprintf(&b, "- `%s` %s: %s\n", a.CreatedAt.Format("15:04"), a.Kind, a.Details)
	}
	return b.String(), nil
}

// scanActivities reads rows into a slice of Activity.
func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		var a Activity
		var createdAt string

		if err := rows.Scan(&a.ID, &a.Kind, &a.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
