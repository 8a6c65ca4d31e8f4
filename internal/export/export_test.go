package export

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalambet/foretell/internal/history"
)

var testRecords = []history.Record{
	{
		ID:          1,
		Text:        "Unexpected treasure awaits you",
		Category:    "fortune",
		AppliesTo:   "Thursday, January 16, 2025",
		Confidence:  "82%",
		GeneratedAt: "2025-01-15T08:00:00Z",
		Rating:      4,
		RatedAt:     "2025-01-16T09:00:00Z",
	},
	{
		ID:          2,
		Text:        "A new opportunity knocks",
		Category:    "career",
		AppliesTo:   "Friday, January 17, 2025",
		Confidence:  "70%",
		GeneratedAt: "2025-01-15T09:00:00Z",
		TimeContext: &history.TimeContext{TimeOfDay: "morning", DayType: "weekday"},
	},
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testRecords); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0] != "id,category,prediction,applies_to,confidence,generated_at,rating" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Unexpected treasure awaits you") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",4") {
		t.Errorf("row 1 rating = %q, want trailing ,4", lines[1])
	}
	// Unrated records get an empty rating column.
	if !strings.HasSuffix(lines[2], ",") {
		t.Errorf("row 2 = %q, want empty trailing rating", lines[2])
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, testRecords); err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "# Prediction History\n") {
		t.Errorf("missing document heading: %q", out)
	}
	// Categories appear title-cased and sorted: Career before Fortune.
	careerIdx := strings.Index(out, "## Career")
	fortuneIdx := strings.Index(out, "## Fortune")
	if careerIdx == -1 || fortuneIdx == -1 {
		t.Fatalf("missing category headings: %q", out)
	}
	if careerIdx > fortuneIdx {
		t.Error("categories are not sorted")
	}
	if !strings.Contains(out, "rated 4/5") {
		t.Errorf("missing rating annotation: %q", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testRecords); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded []history.Record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d, want 2", len(decoded))
	}
	if decoded[1].TimeContext == nil || decoded[1].TimeContext.TimeOfDay != "morning" {
		t.Errorf("time context lost in round trip: %+v", decoded[1])
	}
}

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("JSON(nil) = %q, want []", got)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	if err := SQLite(path, testRecords); err != nil {
		t.Fatalf("SQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening exported db: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	var text, timeOfDay string
	var rating sql.NullInt64
	err = db.QueryRow("SELECT text, time_of_day, rating FROM predictions WHERE id = 2").
		Scan(&text, &timeOfDay, &rating)
	if err != nil {
		t.Fatalf("querying row: %v", err)
	}
	if text != "A new opportunity knocks" {
		t.Errorf("text = %q", text)
	}
	if timeOfDay != "morning" {
		t.Errorf("time_of_day = %q, want morning", timeOfDay)
	}
	if rating.Valid {
		t.Errorf("rating = %v, want NULL for unrated record", rating.Int64)
	}
}

func TestSQLiteReExportReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	if err := SQLite(path, testRecords); err != nil {
		t.Fatalf("first export: %v", err)
	}

	updated := make([]history.Record, len(testRecords))
	copy(updated, testRecords)
	updated[0].Rating = 5
	if err := SQLite(path, updated); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count, rating int
	if err := db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 after re-export", count)
	}
	if err := db.QueryRow("SELECT rating FROM predictions WHERE id = 1").Scan(&rating); err != nil {
		t.Fatal(err)
	}
	if rating != 5 {
		t.Errorf("rating = %d, want 5", rating)
	}
}
