package timetable

import (
	"errors"
	"strings"
	"testing"
)

func mustMinute(t *testing.T, s string) Minute {
	t.Helper()
	m, err := ParseMinute(s)
	if err != nil {
		t.Fatalf("ParseMinute(%q): %v", s, err)
	}
	return m
}

func TestParseMinute(t *testing.T) {
	tests := []struct {
		in      string
		want    Minute
		wantErr bool
	}{
		{in: "09:00", want: 9 * 60},
		{in: "23:59", want: 23*60 + 59},
		{in: "00:00", want: 0},
		{in: "08:30:00", want: 8*60 + 30},
		{in: " 10:15 ", want: 10*60 + 15},
		{in: "25:00", wantErr: true},
		{in: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinute(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMinute(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMinute(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMinuteClock12(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:30", "12:30 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"14:05", "2:05 PM"},
	}
	for _, tt := range tests {
		if got := mustMinute(t, tt.in).Clock12(); got != tt.want {
			t.Errorf("Clock12(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	existing := []TimeSlot{
		{ID: "a", ClassID: "x", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:30"), Room: "101"},
	}

	tests := []struct {
		name      string
		candidate TimeSlot
		wantErr   error
	}{
		{
			name:      "valid non-conflicting slot",
			candidate: TimeSlot{ClassID: "x", Day: 2, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:00")},
		},
		{
			name:      "same day and start rejected",
			candidate: TimeSlot{ClassID: "x", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:00")},
			wantErr:   ErrSlotConflict,
		},
		{
			name:      "overlapping but different start allowed",
			candidate: TimeSlot{ClassID: "x", Day: 1, Start: mustMinute(t, "09:30"), End: mustMinute(t, "11:00")},
		},
		{
			name:      "same start in another class allowed",
			candidate: TimeSlot{ClassID: "y", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:00")},
		},
		{
			name:      "start equals end rejected",
			candidate: TimeSlot{ClassID: "x", Day: 3, Start: mustMinute(t, "09:00"), End: mustMinute(t, "09:00")},
			wantErr:   ErrTimeRange,
		},
		{
			name:      "start after end rejected",
			candidate: TimeSlot{ClassID: "x", Day: 3, Start: mustMinute(t, "11:00"), End: mustMinute(t, "09:00")},
			wantErr:   ErrTimeRange,
		},
		{
			name:      "day out of range rejected",
			candidate: TimeSlot{ClassID: "x", Day: 7, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:00")},
			wantErr:   ErrDayRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidate, existing)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConflictMessage(t *testing.T) {
	existing := []TimeSlot{
		{ClassID: "x", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:30")},
	}
	err := Validate(TimeSlot{ClassID: "x", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:00")}, existing)
	if err == nil {
		t.Fatal("expected conflict")
	}
	if !strings.Contains(err.Error(), "Monday") || !strings.Contains(err.Error(), "9:00 AM") {
		t.Errorf("conflict message %q missing day or time", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := TimeSlot{ClassID: "x", Day: 1, Start: mustMinute(t, "09:00"), End: mustMinute(t, "10:30")}

	tests := []struct {
		name      string
		candidate TimeSlot
		want      bool
	}{
		{"start inside window", TimeSlot{Day: 1, Start: mustMinute(t, "09:30")}, true},
		{"start at window start", TimeSlot{Day: 1, Start: mustMinute(t, "09:00")}, true},
		{"start exactly at window end", TimeSlot{Day: 1, Start: mustMinute(t, "10:30")}, false},
		{"other day", TimeSlot{Day: 2, Start: mustMinute(t, "09:30")}, false},
		{"before window", TimeSlot{Day: 1, Start: mustMinute(t, "08:00")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.candidate, base); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
