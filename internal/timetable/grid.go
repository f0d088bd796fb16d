package timetable

import "iter"

// Grid describes the week view: a fixed sequence of time buckets between
// DayStart and DayEnd, one column per weekday. Bounds and bucket size come
// from configuration, not constants.
type Grid struct {
	DayStart Minute
	DayEnd   Minute
	Bucket   int // bucket size in minutes
}

// Cell is one (day, bucket) position in the week view. Slot is nil for a free
// period.
type Cell struct {
	Day    int       `json:"day_of_week"`
	Bucket Minute    `json:"bucket"`
	Slot   *TimeSlot `json:"slot,omitempty"`
}

// Buckets returns the ordered bucket start times for one day.
func (g Grid) Buckets() []Minute {
	size := g.Bucket
	if size <= 0 {
		size = 30
	}
	var out []Minute
	for at := g.DayStart; at < g.DayEnd; at += Minute(size) {
		out = append(out, at)
	}
	return out
}

// SlotAt resolves the slot covering the given day and bucket start, or nil.
// When several slots cover the same cell the first in slice order wins; the
// view degrades instead of erroring.
func (g Grid) SlotAt(slots []TimeSlot, day int, at Minute) *TimeSlot {
	for i := range slots {
		if slots[i].covers(day, at) {
			return &slots[i]
		}
	}
	return nil
}

// Cells yields every cell of the week view in render order: bucket rows top to
// bottom, Sunday through Saturday within each row. The sequence is finite and
// can be ranged over multiple times.
func (g Grid) Cells(slots []TimeSlot) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, at := range g.Buckets() {
			for day := 0; day < 7; day++ {
				cell := Cell{Day: day, Bucket: at, Slot: g.SlotAt(slots, day, at)}
				if !yield(cell) {
					return
				}
			}
		}
	}
}
