// Package history persists generated predictions as a JSON array in a
// single file, bounded to the most recent 100 records.
package history

import "time"

// TimeContext carries the clock-derived fields the time-aware and smart
// selection modes attach. It is embedded as a pointer so the fields are
// absent from the JSON whenever the mode did not produce them.
type TimeContext struct {
	TimeOfDay string `json:"time_of_day,omitempty"`
	DayType   string `json:"day_type,omitempty"`
}

// Record is a single generated prediction.
type Record struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category"`
	AppliesTo   string `json:"applies_to,omitempty"`
	Confidence  string `json:"confidence,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
	Theme       string `json:"theme,omitempty"`
	*TimeContext
	Rating  int    `json:"rating,omitempty"`
	RatedAt string `json:"rated_at,omitempty"`
}

// timestampLayouts are accepted when parsing generated_at and --since
// values. Histories written by older builds carry bare dates or zoneless
// timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
