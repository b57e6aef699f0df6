// Package timetable owns placed schedule entries and the table collection.
package timetable

import (
	"github.com/google/uuid"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// Entry is one placed day/period-range/room block on one table.
// The ID is a synthetic identifier generated at creation time; it stays
// valid when unrelated entries are removed or reordered.
type Entry struct {
	ID      string
	Day     string
	Periods []int
	Room    string
	Lecture *lecture.Lecture
}

// NewEntry creates an entry for one meeting of a lecture.
func NewEntry(m lecture.Meeting, lec *lecture.Lecture) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Day:     m.Day,
		Periods: m.Periods,
		Room:    m.Room,
		Lecture: lec,
	}
}

// Relocated returns a copy of the entry at a new day and period range.
// All other fields, including the ID, are unchanged.
func (e Entry) Relocated(day string, periods []int) Entry {
	e.Day = day
	e.Periods = periods
	return e
}

// StartPeriod returns the entry's first period, or 0 if it has none.
func (e Entry) StartPeriod() int {
	if len(e.Periods) == 0 {
		return 0
	}
	return e.Periods[0]
}

// Covers reports whether the entry occupies the given day and period.
func (e Entry) Covers(day string, period int) bool {
	if e.Day != day {
		return false
	}
	for _, p := range e.Periods {
		if p == period {
			return true
		}
	}
	return false
}
