package model

import "fmt"

// ValidationError reports bad user input (empty title, non-positive duration,
// unparseable date/time). Recovered locally by the caller; never fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid appointment: " + e.Reason
}

// FormatError reports a corrupt or unreadable persisted record.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }
