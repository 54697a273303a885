package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 15, hour, min, 0, 0, time.UTC)
}

func TestNew_TrimsTitle(t *testing.T) {
	a, err := New("  Dentist  ", at(t, 9, 0), 30)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Title != "Dentist" {
		t.Fatalf("expected trimmed title, got %q", a.Title)
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		duration int
	}{
		{"empty title", "", 30},
		{"whitespace title", "   ", 30},
		{"zero duration", "Dentist", 0},
		{"negative duration", "Dentist", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.title, at(t, 9, 0), tc.duration)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestEnd_IsDerived(t *testing.T) {
	a, err := New("Dentist", at(t, 9, 0), 30)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got, want := a.End(), at(t, 9, 30); !got.Equal(want) {
		t.Fatalf("end = %v, want %v", got, want)
	}
}

func TestOverlaps_HalfOpenIntervals(t *testing.T) {
	mk := func(hour, min, duration int) Appointment {
		a, err := New("x", at(t, hour, min), duration)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		return a
	}
	a := mk(9, 0, 60) // 09:00–10:00

	cases := []struct {
		name string
		b    Appointment
		want bool
	}{
		{"partial overlap", mk(9, 30, 60), true},
		{"back-to-back after", mk(10, 0, 60), false},
		{"back-to-back before", mk(8, 0, 60), false},
		{"contained", mk(9, 15, 15), true},
		{"identical", mk(9, 0, 60), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("overlaps = %v, want %v", got, tc.want)
			}
			// The predicate is symmetric.
			if got := tc.b.Overlaps(a); got != tc.want {
				t.Fatalf("reverse overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	a, err := New("Dentist", at(t, 9, 0), 30)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := "Dentist — 15/03 09:00 → 09:30 (30 min)"
	if got := a.Label(); got != want {
		t.Fatalf("label = %q, want %q", got, want)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	a, err := New("Dentist", at(t, 9, 0), 30)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Appointment
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != a.Title || !got.Start.Equal(a.Start) || got.Duration != a.Duration {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, a)
	}
	if !got.End().Equal(a.End()) {
		t.Fatalf("derived end mismatch: %v vs %v", got.End(), a.End())
	}
}

func TestJSON_WireFieldNames(t *testing.T) {
	raw := []byte(`{"titolo":"Dentist","data_ora":"2024-03-15T09:00:00","durata":30}`)
	var a Appointment
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Title != "Dentist" || a.Duration != 30 {
		t.Fatalf("unexpected appointment: %+v", a)
	}
	if a.Start.Hour() != 9 || a.Start.Day() != 15 {
		t.Fatalf("unexpected start: %v", a.Start)
	}
}

func TestJSON_FormatErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing title", `{"data_ora":"2024-03-15T09:00:00","durata":30}`},
		{"missing start", `{"titolo":"Dentist","durata":30}`},
		{"bad start", `{"titolo":"Dentist","data_ora":"not-a-date","durata":30}`},
		{"start with offset", `{"titolo":"Dentist","data_ora":"2024-03-15T09:00:00+02:00","durata":30}`},
		{"wrong duration type", `{"titolo":"Dentist","data_ora":"2024-03-15T09:00:00","durata":"thirty"}`},
		{"zero duration", `{"titolo":"Dentist","data_ora":"2024-03-15T09:00:00","durata":0}`},
		{"not an object", `"hello"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Appointment
			err := json.Unmarshal([]byte(tc.raw), &a)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
		})
	}
}

func TestParseStart(t *testing.T) {
	start, err := ParseStart("2024-03-15", "09:30")
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	if start.Hour() != 9 || start.Minute() != 30 || start.Day() != 15 {
		t.Fatalf("unexpected start: %v", start)
	}

	for _, tc := range [][2]string{
		{"", "09:30"},
		{"2024-03-15", ""},
		{"15/03/2024", "09:30"},
		{"2024-03-15", "9am"},
	} {
		_, err := ParseStart(tc[0], tc[1])
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseStart(%q, %q): expected ValidationError, got %v", tc[0], tc[1], err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	n, err := ParseDuration(" 90 ")
	if err != nil || n != 90 {
		t.Fatalf("ParseDuration: got %d, %v", n, err)
	}

	for _, s := range []string{"", "0", "-5", "1.5", "90m", "abc"} {
		_, err := ParseDuration(s)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseDuration(%q): expected ValidationError, got %v", s, err)
		}
	}
}
