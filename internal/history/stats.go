package history

import "time"

// Stats aggregates a history snapshot.
type Stats struct {
	Total        int            `json:"total"`
	ByCategory   map[string]int `json:"by_category"`
	Rated        int            `json:"rated"`
	MeanRating   float64        `json:"mean_rating,omitempty"`
	RatingCounts map[int]int    `json:"rating_counts,omitempty"`
	Oldest       string         `json:"oldest,omitempty"`
	Newest       string         `json:"newest,omitempty"`
}

// CategoryPercent returns the share of records in the given category.
func (s Stats) CategoryPercent(category string) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByCategory[category]) / float64(s.Total) * 100
}

// ComputeStats aggregates counts, rating distribution, and the oldest and
// newest parseable generated_at timestamps.
func ComputeStats(records []Record) Stats {
	st := Stats{
		Total:      len(records),
		ByCategory: make(map[string]int),
	}

	ratingSum := 0
	var oldest, newest time.Time
	for _, r := range records {
		st.ByCategory[r.Category]++

		if r.Rating >= 1 && r.Rating <= 5 {
			if st.RatingCounts == nil {
				st.RatingCounts = make(map[int]int)
			}
			st.Rated++
			ratingSum += r.Rating
			st.RatingCounts[r.Rating]++
		}

		t, ok := parseTimestamp(r.GeneratedAt)
		if !ok {
			continue
		}
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
			st.Oldest = r.GeneratedAt
		}
		if newest.IsZero() || t.After(newest) {
			newest = t
			st.Newest = r.GeneratedAt
		}
	}

	if st.Rated > 0 {
		st.MeanRating = float64(ratingSum) / float64(st.Rated)
	}
	return st
}
