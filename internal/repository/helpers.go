package repository

import (
	"fmt"
	"time"
)

// Timestamps are stored as RFC3339 with nanoseconds in UTC so that string
// order equals time order.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

func nowUTC() string {
	return formatTime(time.Now())
}
