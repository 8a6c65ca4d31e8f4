package reminder

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.json")
	return NewStoreWithClock(path, fixedClock{t: testNow})
}

func TestAppendAssignsIDsAndCreatedAt(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Append(Record{Prediction: "rain of luck", Category: "fortune", RemindDate: "2025-01-20"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if first.ReminderID != 1 {
		t.Errorf("ReminderID = %d, want 1", first.ReminderID)
	}
	if first.CreatedAt != "2025-01-15T08:00:00Z" {
		t.Errorf("CreatedAt = %q", first.CreatedAt)
	}

	second, err := store.Append(Record{Prediction: "promotion ahead", Category: "career", RemindDate: "2025-01-21"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if second.ReminderID != 2 {
		t.Errorf("ReminderID = %d, want 2", second.ReminderID)
	}
}

func TestPending(t *testing.T) {
	store := newTestStore(t)

	due, _ := store.Append(Record{Prediction: "due", RemindDate: "2025-01-10"})
	today, _ := store.Append(Record{Prediction: "today", RemindDate: "2025-01-15"})
	future, _ := store.Append(Record{Prediction: "future", RemindDate: "2025-02-01"})
	acked, _ := store.Append(Record{Prediction: "acked", RemindDate: "2025-01-01"})
	if err := store.Acknowledge(acked.ReminderID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	pending := store.Pending("2025-01-15")
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	if pending[0].ReminderID != due.ReminderID || pending[1].ReminderID != today.ReminderID {
		t.Errorf("pending ids = %d, %d", pending[0].ReminderID, pending[1].ReminderID)
	}
	_ = future
}

func TestAcknowledge(t *testing.T) {
	store := newTestStore(t)
	rec, _ := store.Append(Record{Prediction: "x", RemindDate: "2025-01-10"})

	if err := store.Acknowledge(rec.ReminderID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	got := store.Load()[0]
	if !got.Acknowledged {
		t.Error("Acknowledged = false, want true")
	}
	if got.AcknowledgedAt != "2025-01-15T08:00:00Z" {
		t.Errorf("AcknowledgedAt = %q", got.AcknowledgedAt)
	}

	if err := store.Acknowledge(rec.ReminderID); err == nil {
		t.Error("second Acknowledge = nil, want error")
	}
}

func TestAcknowledgeUnknownID(t *testing.T) {
	store := newTestStore(t)

	err := store.Acknowledge(7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Acknowledge(7) = %v, want ErrNotFound", err)
	}
}

func TestClearAcknowledged(t *testing.T) {
	store := newTestStore(t)
	a, _ := store.Append(Record{Prediction: "a", RemindDate: "2025-01-10"})
	store.Append(Record{Prediction: "b", RemindDate: "2025-01-11"})
	if err := store.Acknowledge(a.ReminderID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	n, err := store.Clear(false)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 1 {
		t.Errorf("Clear(false) = %d, want 1", n)
	}

	remaining := store.Load()
	if len(remaining) != 1 || remaining[0].Prediction != "b" {
		t.Errorf("remaining = %+v", remaining)
	}
}

func TestClearAcknowledgedNoneFails(t *testing.T) {
	store := newTestStore(t)
	store.Append(Record{Prediction: "a", RemindDate: "2025-01-10"})

	if _, err := store.Clear(false); err == nil {
		t.Error("Clear(false) with no acknowledged reminders = nil, want error")
	}
}

func TestClearAll(t *testing.T) {
	store := newTestStore(t)
	store.Append(Record{Prediction: "a", RemindDate: "2025-01-10"})
	store.Append(Record{Prediction: "b", RemindDate: "2025-01-11"})

	n, err := store.Clear(true)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear(true) = %d, want 2", n)
	}
	if got := store.Load(); len(got) != 0 {
		t.Errorf("len after clear = %d, want 0", len(got))
	}
}

func TestDeriveDate(t *testing.T) {
	clock := fixedClock{t: testNow}

	tests := []struct {
		name      string
		explicit  string
		appliesTo string
		want      string
	}{
		{"explicit date", "2025-03-01", "", "2025-03-01"},
		{"explicit rfc3339", "2025-03-01T12:00:00Z", "", "2025-03-01"},
		{"unparsable explicit falls back to tomorrow", "next tuesday", "Monday, January 20, 2025", "2025-01-16"},
		{"applies_to long date", "", "Monday, January 20, 2025", "2025-01-20"},
		{"nothing parses", "", "someday", "2025-01-16"},
		{"empty everything", "", "", "2025-01-16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveDate(tt.explicit, tt.appliesTo, clock)
			if got != tt.want {
				t.Errorf("DeriveDate(%q, %q) = %q, want %q", tt.explicit, tt.appliesTo, got, tt.want)
			}
		})
	}
}
