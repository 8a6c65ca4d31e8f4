// Package reminder persists prediction reminders as a JSON array in a
// single file. Reminders have their own id sequence and, unlike history,
// are never trimmed.
package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when no reminder matches the requested id.
var ErrNotFound = errors.New("reminder not found")

// Record is a single reminder. prediction_id is a lookup key into history,
// not an ownership relation; the referenced prediction may have been
// trimmed away.
type Record struct {
	ReminderID     int    `json:"reminder_id"`
	PredictionID   int    `json:"prediction_id,omitempty"`
	Prediction     string `json:"prediction"`
	Category       string `json:"category"`
	RemindDate     string `json:"remind_date"`
	CreatedAt      string `json:"created_at"`
	Acknowledged   bool   `json:"acknowledged"`
	AcknowledgedAt string `json:"acknowledged_at,omitempty"`
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store persists reminder records with whole-file read-modify-write and no
// locking, matching the history store's semantics.
type Store struct {
	path  string
	clock Clock
}

func NewStore(path string) *Store {
	return &Store{path: path, clock: systemClock{}}
}

// NewStoreWithClock creates a Store with a custom clock (for testing).
func NewStoreWithClock(path string, clock Clock) *Store {
	return &Store{path: path, clock: clock}
}

// Load reads all persisted reminders, soft-failing to empty on a missing
// or malformed file.
func (s *Store) Load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read reminders file, starting empty", "path", s.path, "error", err)
		}
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("malformed reminders file, starting empty", "path", s.path, "error", err)
		return nil
	}
	return records
}

// Append assigns the next reminder id (max existing + 1), stamps
// created_at, and persists.
func (s *Store) Append(rec Record) (Record, error) {
	records := s.Load()
	if rec.ReminderID == 0 {
		maxID := 0
		for _, r := range records {
			if r.ReminderID > maxID {
				maxID = r.ReminderID
			}
		}
		rec.ReminderID = maxID + 1
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = s.clock.Now().Format(time.RFC3339)
	}
	records = append(records, rec)
	if err := s.save(records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Acknowledge marks the reminder done. Fails on an unknown id or a
// reminder that was already acknowledged.
func (s *Store) Acknowledge(id int) error {
	records := s.Load()
	for i := range records {
		if records[i].ReminderID != id {
			continue
		}
		if records[i].Acknowledged {
			return fmt.Errorf("reminder %d is already acknowledged", id)
		}
		records[i].Acknowledged = true
		records[i].AcknowledgedAt = s.clock.Now().Format(time.RFC3339)
		return s.save(records)
	}
	return fmt.Errorf("no reminder with id %d: %w", id, ErrNotFound)
}

// Pending returns unacknowledged reminders due on or before asOf
// (YYYY-MM-DD, compared lexicographically).
func (s *Store) Pending(asOf string) []Record {
	var due []Record
	for _, r := range s.Load() {
		if !r.Acknowledged && r.RemindDate <= asOf {
			due = append(due, r)
		}
	}
	return due
}

// Clear removes reminders and reports how many were removed. With all set
// it empties the store; otherwise it removes only acknowledged reminders
// and fails if there are none.
func (s *Store) Clear(all bool) (int, error) {
	records := s.Load()
	if all {
		if err := s.save([]Record{}); err != nil {
			return 0, err
		}
		return len(records), nil
	}

	kept := make([]Record, 0, len(records))
	removed := 0
	for _, r := range records {
		if r.Acknowledged {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, fmt.Errorf("no acknowledged reminders to clear")
	}
	if err := s.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) save(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing reminders: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing reminders: %w", err)
	}
	return nil
}

// appliesToLayout matches the long date stamped on predictions,
// e.g. "Monday, January 20, 2025".
const appliesToLayout = "Monday, January 2, 2006"

// DeriveDate resolves the remind date for a new reminder, in priority
// order: an explicit date argument (RFC3339 or YYYY-MM-DD); on parse
// failure of an explicit argument, tomorrow with a warning; the source
// prediction's applies_to long date; failing that, tomorrow silently.
func DeriveDate(explicit, appliesTo string, clock Clock) string {
	tomorrow := clock.Now().AddDate(0, 0, 1).Format("2006-01-02")

	if explicit != "" {
		if t, err := time.Parse(time.RFC3339, explicit); err == nil {
			return t.Format("2006-01-02")
		}
		if t, err := time.Parse("2006-01-02", explicit); err == nil {
			return t.Format("2006-01-02")
		}
		slog.Warn("unparsable reminder date, defaulting to tomorrow", "date", explicit)
		return tomorrow
	}

	if t, err := time.Parse(appliesToLayout, appliesTo); err == nil {
		return t.Format("2006-01-02")
	}
	return tomorrow
}
