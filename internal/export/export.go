// Package export renders history snapshots as CSV, Markdown, JSON, or a
// SQLite database file.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kalambet/foretell/internal/history"
)

var titler = cases.Title(language.English)

// CSV writes records as comma-separated rows with a header line.
func CSV(w io.Writer, records []history.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "category", "prediction", "applies_to", "confidence", "generated_at", "rating"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		rating := ""
		if r.Rating > 0 {
			rating = strconv.Itoa(r.Rating)
		}
		row := []string{strconv.Itoa(r.ID), r.Category, r.Text, r.AppliesTo, r.Confidence, r.GeneratedAt, rating}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Markdown writes records grouped by category under a document heading.
func Markdown(w io.Writer, records []history.Record) error {
	byCategory := make(map[string][]history.Record)
	for _, r := range records {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	if _, err := fmt.Fprintln(w, "# Prediction History"); err != nil {
		return err
	}
	for _, cat := range categories {
		fmt.Fprintf(w, "\n## %s\n\n", titler.String(cat))
		for _, r := range byCategory[cat] {
			fmt.Fprintf(w, "- %s", r.Text)
			if r.AppliesTo != "" {
				fmt.Fprintf(w, " _(applies to %s", r.AppliesTo)
				if r.Confidence != "" {
					fmt.Fprintf(w, ", %s confident", r.Confidence)
				}
				fmt.Fprint(w, ")_")
			}
			if r.Rating > 0 {
				fmt.Fprintf(w, " — rated %d/5", r.Rating)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

// JSON writes records as an indented JSON array.
func JSON(w io.Writer, records []history.Record) error {
	if records == nil {
		records = []history.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
