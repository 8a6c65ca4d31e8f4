package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxRecords bounds the history file; the oldest records are trimmed first.
const maxRecords = 100

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("prediction not found")

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store persists prediction records in a single JSON file. Every operation
// is a whole-file read-modify-write with no locking; concurrent writers
// race and the last write wins.
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

// Load reads all persisted records. A missing, unreadable, or malformed
// file yields an empty history, never an error.
func (s *Store) Load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read history file, starting empty", "path", s.path, "error", err)
		}
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("malformed history file, starting empty", "path", s.path, "error", err)
		return nil
	}
	return records
}

// Append assigns an id if the record has none (max existing id + 1),
// appends, trims to the most recent maxRecords, and persists the result.
func (s *Store) Append(rec Record) (Record, error) {
	records := s.Load()
	if rec.ID == 0 {
		rec.ID = nextID(records)
	}
	records = append(records, rec)
	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}
	if err := s.save(records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func nextID(records []Record) int {
	maxID := 0
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// SetRating attaches a 1-5 rating to the record with the given id and
// stamps rated_at.
func (s *Store) SetRating(id, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	records := s.Load()
	for i := range records {
		if records[i].ID == id {
			records[i].Rating = rating
			records[i].RatedAt = s.clock.Now().Format(time.RFC3339)
			return s.save(records)
		}
	}
	return fmt.Errorf("no prediction with id %d: %w", id, ErrNotFound)
}

// Clear removes the entire history and reports how many records it held.
func (s *Store) Clear() (int, error) {
	n := len(s.Load())
	if err := s.save([]Record{}); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) save(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Filter narrows records by category (case-insensitive exact match) and by
// a minimum generated_at instant. An unparsable since value is reported as
// a warning and the date filter is skipped; the category filter still
// applies.
func Filter(records []Record, category, since string) []Record {
	out := records
	if category != "" {
		filtered := make([]Record, 0, len(out))
		for _, r := range out {
			if strings.EqualFold(r.Category, category) {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if since != "" {
		cutoff, ok := parseTimestamp(since)
		if !ok {
			slog.Warn("ignoring unparsable since filter", "since", since)
			return out
		}
		filtered := make([]Record, 0, len(out))
		for _, r := range out {
			if t, ok := parseTimestamp(r.GeneratedAt); ok && !t.Before(cutoff) {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	return out
}

// PreferenceScores derives a [0,1] score per category from the mean rating
// of that category's rated records: (avg - 1) / 4. Categories with no
// rated records are absent from the map.
func PreferenceScores(records []Record) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Rating >= 1 && r.Rating <= 5 {
			sums[r.Category] += r.Rating
			counts[r.Category]++
		}
	}
	scores := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		avg := float64(sum) / float64(counts[cat])
		scores[cat] = (avg - 1) / 4
	}
	return scores
}
