package repository

import (
	"fmt"
	"time"
)

// dayLayout keys daily totals by calendar date in the offset the record was
// stamped with.
const dayLayout = "2006-01-02"

// DayKey returns the study_days key of t.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// formatTime keeps sub-second precision and the offset of t.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return formatTime(time.Now().UTC())
}
