package timeparser

import (
	"fmt"
	"time"
)

// ParseReadingTimestamp attempts to parse a reading timestamp with multiple formats
func ParseReadingTimestamp(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without zone, fractional seconds tolerated
		"2006-01-02 15:04:05", // Space-separated date and time
		"2006-01-02 15:04",    // Minute precision
		"2006-01-02",          // Date only
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp '%s': %w", dateStr, lastErr)
}
