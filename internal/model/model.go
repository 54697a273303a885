package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// startLayout is the persisted datetime encoding: ISO-8601 local, no offset.
// This matches existing appointments.json files.
const startLayout = "2006-01-02T15:04:05"

// Appointment is a titled time interval: a start instant plus a duration in
// minutes. The end is always derived, never stored.
//
// Appointments are immutable after construction; the only modification path
// is delete + re-add.
type Appointment struct {
	Title    string
	Start    time.Time
	Duration int // minutes
}

// New validates raw field values and constructs an Appointment.
// The title is trimmed; an empty trimmed title or a non-positive duration
// fails with *ValidationError.
func New(title string, start time.Time, durationMinutes int) (Appointment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Appointment{}, &ValidationError{Reason: "title must not be empty"}
	}
	if durationMinutes <= 0 {
		return Appointment{}, &ValidationError{Reason: fmt.Sprintf("duration must be a positive number of minutes, got %d", durationMinutes)}
	}
	return Appointment{Title: title, Start: start, Duration: durationMinutes}, nil
}

// End returns the derived end instant (Start + Duration minutes).
func (a Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.Duration) * time.Minute)
}

// Overlaps reports whether the half-open intervals [a.Start, a.End) and
// [b.Start, b.End) intersect. Back-to-back appointments (a.End == b.Start)
// do not overlap.
func (a Appointment) Overlaps(b Appointment) bool {
	return a.Start.Before(b.End()) && a.End().After(b.Start)
}

// Label renders the appointment as a single display line:
//
//	Dentist — 15/03 09:00 → 09:30 (30 min)
func (a Appointment) Label() string {
	return fmt.Sprintf("%s — %s → %s (%d min)",
		a.Title,
		a.Start.Format("02/01 15:04"),
		a.End().Format("15:04"),
		a.Duration,
	)
}

// wireAppointment is the persisted record shape. Field names are kept
// byte-compatible with existing saved files.
type wireAppointment struct {
	Title    string `json:"titolo"`
	Start    string `json:"data_ora"`
	Duration int    `json:"durata"`
}

func (a Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireAppointment{
		Title:    a.Title,
		Start:    a.Start.Format(startLayout),
		Duration: a.Duration,
	})
}

func (a *Appointment) UnmarshalJSON(b []byte) error {
	var w wireAppointment
	if err := json.Unmarshal(b, &w); err != nil {
		return &FormatError{Reason: "malformed appointment record", Err: err}
	}
	if strings.TrimSpace(w.Title) == "" {
		return &FormatError{Reason: "appointment record is missing a title"}
	}
	if w.Duration <= 0 {
		return &FormatError{Reason: fmt.Sprintf("appointment record has non-positive duration %d", w.Duration)}
	}
	start, err := time.Parse(startLayout, w.Start)
	if err != nil {
		return &FormatError{Reason: fmt.Sprintf("appointment record has unparseable start %q", w.Start), Err: err}
	}
	a.Title = strings.TrimSpace(w.Title)
	a.Start = start
	a.Duration = w.Duration
	return nil
}
