package engine

import "time"

// TimeOfDay buckets an instant by hour: [5,12) morning, [12,17) afternoon,
// [17,21) evening, otherwise night.
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}

// DayType reports "weekday" for Monday through Friday, "weekend" otherwise.
func DayType(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return "weekend"
	default:
		return "weekday"
	}
}
