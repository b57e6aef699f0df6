// Package lecture defines the core catalog domain types for siganpyo.
package lecture

import "strings"

// Lecture is one course section from the fetched catalog.
// It is shared and read-only after the fetch; placed entries keep a
// reference to it rather than copying its fields.
type Lecture struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Grade    int    `json:"grade"`
	Credits  string `json:"credits"`
	Major    string `json:"major"`
	Schedule string `json:"schedule"`
}

// Meeting is one parsed day/time/room group of a lecture's schedule string.
// A lecture with several groups yields several meetings.
type Meeting struct {
	Day     string
	Periods []int
	Room    string
}

// Filter describes the search dialog's composed criteria.
// Zero values mean "no restriction" for each field.
type Filter struct {
	Query  string // case-insensitive substring on title
	Major  string
	Grade  int
	Day    string // weekday label, e.g. "월"
	Period int    // 1-based slot index
}

// Matches reports whether a lecture satisfies every set criterion.
// Day/period matching is checked against the parsed schedule, so the
// filter and the parser can never disagree about what a lecture covers.
func (f Filter) Matches(l *Lecture, cache *ParseCache) bool {
	if l == nil {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Major != "" && l.Major != f.Major {
		return false
	}
	if f.Grade != 0 && l.Grade != f.Grade {
		return false
	}
	if f.Day == "" && f.Period == 0 {
		return true
	}

	meetings := cache.Parse(l.Schedule)
	for _, m := range meetings {
		if f.Day != "" && m.Day != f.Day {
			continue
		}
		if f.Period != 0 && !containsPeriod(m.Periods, f.Period) {
			continue
		}
		return true
	}
	return false
}

func containsPeriod(periods []int, p int) bool {
	for _, v := range periods {
		if v == p {
			return true
		}
	}
	return false
}
