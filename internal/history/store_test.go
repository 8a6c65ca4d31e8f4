package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	return NewStoreWithClock(path, fixedClock{t: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)})
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)

	for want := 1; want <= 3; want++ {
		rec, err := store.Append(Record{Text: "a fortune", Category: "fortune"})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if rec.ID != want {
			t.Errorf("ID = %d, want %d", rec.ID, want)
		}
	}

	records := store.Load()
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
}

func TestAppendTrimsOldestBeyondLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 105; i++ {
		if _, err := store.Append(Record{Text: fmt.Sprintf("fortune %d", i), Category: "fortune"}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	records := store.Load()
	if len(records) != 100 {
		t.Fatalf("len(records) = %d, want 100", len(records))
	}
	if records[0].ID != 6 {
		t.Errorf("oldest surviving ID = %d, want 6", records[0].ID)
	}
	if records[99].ID != 105 {
		t.Errorf("newest ID = %d, want 105", records[99].ID)
	}
}

func TestIDsKeepGrowingAfterTrim(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 100; i++ {
		if _, err := store.Append(Record{Text: "x", Category: "fortune"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	rec, err := store.Append(Record{Text: "one more", Category: "fortune"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if rec.ID != 101 {
		t.Errorf("ID = %d, want 101", rec.ID)
	}
}

func TestSetRatingRange(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Append(Record{Text: "x", Category: "fortune"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		if err := store.SetRating(1, rating); err == nil {
			t.Errorf("SetRating(1, %d) = nil, want error", rating)
		}
	}
}

func TestSetRating(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Append(Record{Text: "x", Category: "fortune"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.SetRating(1, 4); err != nil {
		t.Fatalf("SetRating: %v", err)
	}

	rec := store.Load()[0]
	if rec.Rating != 4 {
		t.Errorf("Rating = %d, want 4", rec.Rating)
	}
	if rec.RatedAt != "2025-01-15T08:00:00Z" {
		t.Errorf("RatedAt = %q, want 2025-01-15T08:00:00Z", rec.RatedAt)
	}

	// Re-rating replaces the previous rating.
	if err := store.SetRating(1, 2); err != nil {
		t.Fatalf("SetRating again: %v", err)
	}
	if got := store.Load()[0].Rating; got != 2 {
		t.Errorf("Rating after re-rate = %d, want 2", got)
	}
}

func TestSetRatingUnknownID(t *testing.T) {
	store := newTestStore(t)

	err := store.SetRating(42, 3)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetRating(42, 3) = %v, want ErrNotFound", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	if records := store.Load(); records != nil {
		t.Errorf("Load() = %v, want nil", records)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if records := store.Load(); records != nil {
		t.Errorf("Load() = %v, want nil for malformed file", records)
	}

	// The store stays usable: the next append starts a fresh history.
	rec, err := store.Append(Record{Text: "x", Category: "fortune"})
	if err != nil {
		t.Fatalf("Append after malformed load: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("ID = %d, want 1", rec.ID)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := store.Append(Record{Text: "x", Category: "fortune"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if records := store.Load(); len(records) != 0 {
		t.Errorf("len after clear = %d, want 0", len(records))
	}
}

func TestFilterByCategory(t *testing.T) {
	records := []Record{
		{ID: 1, Category: "fortune"},
		{ID: 2, Category: "Career"},
		{ID: 3, Category: "career"},
	}

	got := Filter(records, "CAREER", "")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("ids = %d, %d, want 2, 3", got[0].ID, got[1].ID)
	}
}

func TestFilterSince(t *testing.T) {
	records := []Record{
		{ID: 1, GeneratedAt: "2024-12-31T23:59:59Z"},
		{ID: 2, GeneratedAt: "2025-06-01T00:00:00Z"},
		{ID: 3, GeneratedAt: "2025-07-15"},
	}

	got := Filter(records, "", "2025-06-01")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("ids = %d, %d, want 2, 3", got[0].ID, got[1].ID)
	}
}

func TestFilterUnparsableSince(t *testing.T) {
	records := []Record{
		{ID: 1, Category: "fortune", GeneratedAt: "2025-01-01T00:00:00Z"},
		{ID: 2, Category: "career", GeneratedAt: "2025-01-02T00:00:00Z"},
	}

	// A bad since value skips the date filter but keeps the category filter.
	got := Filter(records, "career", "not-a-date")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("id = %d, want 2", got[0].ID)
	}
}

func TestPreferenceScores(t *testing.T) {
	records := []Record{
		{Category: "fortune", Rating: 5},
		{Category: "fortune", Rating: 5},
		{Category: "career", Rating: 1},
		{Category: "career", Rating: 3},
		{Category: "health"}, // unrated, contributes nothing
	}

	scores := PreferenceScores(records)

	if got := scores["fortune"]; got != 1.0 {
		t.Errorf("fortune score = %v, want 1.0", got)
	}
	if got := scores["career"]; got != 0.25 {
		t.Errorf("career score = %v, want 0.25", got)
	}
	if _, ok := scores["health"]; ok {
		t.Error("health should have no score without rated records")
	}
}

func TestComputeStats(t *testing.T) {
	records := []Record{
		{Category: "fortune", Rating: 5, GeneratedAt: "2025-01-01T10:00:00Z"},
		{Category: "fortune", GeneratedAt: "2025-01-03T10:00:00Z"},
		{Category: "career", Rating: 3, GeneratedAt: "2025-01-02T10:00:00Z"},
		{Category: "career", Rating: 3, GeneratedAt: "bogus"},
	}

	st := ComputeStats(records)

	if st.Total != 4 {
		t.Errorf("Total = %d, want 4", st.Total)
	}
	if st.ByCategory["fortune"] != 2 || st.ByCategory["career"] != 2 {
		t.Errorf("ByCategory = %v", st.ByCategory)
	}
	if st.Rated != 3 {
		t.Errorf("Rated = %d, want 3", st.Rated)
	}
	if want := (5.0 + 3.0 + 3.0) / 3.0; st.MeanRating != want {
		t.Errorf("MeanRating = %v, want %v", st.MeanRating, want)
	}
	if st.RatingCounts[3] != 2 || st.RatingCounts[5] != 1 {
		t.Errorf("RatingCounts = %v", st.RatingCounts)
	}
	if st.Oldest != "2025-01-01T10:00:00Z" {
		t.Errorf("Oldest = %q", st.Oldest)
	}
	if st.Newest != "2025-01-03T10:00:00Z" {
		t.Errorf("Newest = %q", st.Newest)
	}
	if got := st.CategoryPercent("fortune"); got != 50 {
		t.Errorf("CategoryPercent(fortune) = %v, want 50", got)
	}
}
