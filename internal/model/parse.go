package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseStart combines a YYYY-MM-DD date and an HH:MM time into the start
// instant. Both come straight from form fields or CLI flags, so failures are
// *ValidationError.
func ParseStart(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, &ValidationError{Reason: "date and time are required"}
	}
	start, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	if err != nil {
		return time.Time{}, &ValidationError{Reason: fmt.Sprintf("unparseable date/time %q %q", dateStr, timeStr)}
	}
	return start, nil
}

// ParseDuration parses a duration field as a positive whole number of
// minutes. "90" is fine; "1.5", "90m" and "0" are not.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Reason: "duration is required"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Reason: fmt.Sprintf("duration must be a whole number of minutes, got %q", s)}
	}
	if n <= 0 {
		return 0, &ValidationError{Reason: fmt.Sprintf("duration must be a positive number of minutes, got %d", n)}
	}
	return n, nil
}
