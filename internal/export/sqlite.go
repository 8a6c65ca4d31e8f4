package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kalambet/foretell/internal/history"
)

const predictionsSchema = `CREATE TABLE IF NOT EXISTS predictions (
	id INTEGER PRIMARY KEY,
	text TEXT NOT NULL,
	category TEXT NOT NULL,
	applies_to TEXT,
	confidence TEXT,
	generated_at TEXT,
	theme TEXT,
	time_of_day TEXT,
	day_type TEXT,
	rating INTEGER,
	rated_at TEXT
)`

// SQLite writes records into a predictions table in the database file at
// path, creating the file and its parent directory as needed. Existing
// rows with matching ids are replaced, so re-exporting a grown history
// into the same file is safe.
func SQLite(path string, records []history.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(predictionsSchema); err != nil {
		return fmt.Errorf("creating predictions table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO predictions
		(id, text, category, applies_to, confidence, generated_at, theme, time_of_day, day_type, rating, rated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var timeOfDay, dayType string
		if r.TimeContext != nil {
			timeOfDay = r.TimeContext.TimeOfDay
			dayType = r.TimeContext.DayType
		}
		var rating any
		if r.Rating > 0 {
			rating = r.Rating
		}
		if _, err := stmt.Exec(r.ID, r.Text, r.Category, r.AppliesTo, r.Confidence,
			r.GeneratedAt, r.Theme, timeOfDay, dayType, rating, r.RatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting prediction %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}
