package timetable

import (
	"errors"
	"fmt"
	"time"
)

// TimeSlot is one weekly recurring meeting window for a class.
type TimeSlot struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	Day       int       `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	Start     Minute    `json:"start_time"`
	End       Minute    `json:"end_time"`
	Room      string    `json:"room_number,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the English weekday name, or "" for out-of-range days.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

var (
	ErrTimeRange    = errors.New("start time must be before end time")
	ErrDayRange     = errors.New("day of week must be between 0 and 6")
	ErrSlotConflict = errors.New("a time slot already exists")
)

// covers reports whether the slot is in progress at the given day and time.
// Half-open interval: a slot ending exactly at `at` does not cover it.
func (s TimeSlot) covers(day int, at Minute) bool {
	return s.Day == day && s.Start <= at && at < s.End
}

// Overlaps reports whether candidate's start falls inside existing's window on
// the same day. Uses the same half-open containment as grid rendering, so a
// slot starting exactly when another ends is not an overlap.
func Overlaps(candidate, existing TimeSlot) bool {
	return existing.covers(candidate.Day, candidate.Start)
}

// Validate checks a candidate slot before it is persisted. Only an exact
// (day, start) duplicate within the class is a conflict; overlapping windows
// with different start times are allowed (two rooms may share a period).
func Validate(candidate TimeSlot, existing []TimeSlot) error {
	if candidate.Start >= candidate.End {
		return ErrTimeRange
	}
	if candidate.Day < 0 || candidate.Day > 6 {
		return ErrDayRange
	}
	for _, s := range existing {
		if s.ClassID == candidate.ClassID && s.Day == candidate.Day && s.Start == candidate.Start {
			return fmt.Errorf("%w for %s at %s", ErrSlotConflict, DayName(candidate.Day), candidate.Start.Clock12())
		}
	}
	return nil
}
