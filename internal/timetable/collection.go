package timetable

import (
	"github.com/google/uuid"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// Collection maps table identifiers to their ordered entry sequences.
//
// A Collection is treated as an immutable value: every operation returns
// a new map and leaves the receiver untouched, while unaffected tables
// keep their exact entry slices. Downstream rendering memoizes on slice
// identity, so the structural sharing is part of the contract, not an
// optimization. All operations are total; a missing table id is a silent
// no-op that returns the collection unchanged.
type Collection map[string][]Entry

// New creates a collection seeded with a single empty table and returns
// the collection together with the seed table's id.
func New() (Collection, string) {
	id := uuid.NewString()
	return Collection{id: nil}, id
}

// SetAll builds a collection from a whole table mapping at once. The
// given entry slices pass through unchanged, so tables carried over from
// a previous collection keep their slice identity. Every mutating
// operation commits through this bulk replacement.
func SetAll(mapping map[string][]Entry) Collection {
	out := make(Collection, len(mapping))
	for id, entries := range mapping {
		out[id] = entries
	}
	return out
}

// clone copies the map while sharing every table's entry slice.
func (c Collection) clone() Collection {
	return SetAll(c)
}

// Entries returns the entry sequence of a table, or nil if absent.
func (c Collection) Entries(tableID string) []Entry {
	return c[tableID]
}

// Duplicate creates a new table whose entries are a shallow copy of the
// source table's entries at call time, and returns the new table's id.
// If the source table does not exist the collection is returned
// unchanged with an empty id.
func (c Collection) Duplicate(tableID string) (Collection, string) {
	src, ok := c[tableID]
	if !ok {
		return c, ""
	}

	entries := make([]Entry, len(src))
	copy(entries, src)

	out := c.clone()
	id := uuid.NewString()
	out[id] = entries
	return out, id
}

// Remove deletes a table. No-op if the table does not exist.
func (c Collection) Remove(tableID string) Collection {
	if _, ok := c[tableID]; !ok {
		return c
	}
	out := c.clone()
	delete(out, tableID)
	return out
}

// Update applies a pure entries transformation to one table.
// An absent table presents the updater with an empty sequence, so the
// updater can create the table by returning entries for it.
func (c Collection) Update(tableID string, fn func([]Entry) []Entry) Collection {
	out := c.clone()
	out[tableID] = fn(c[tableID])
	return out
}

// Place parses a lecture's schedule string and appends the resulting
// entries to a table. Meetings with no periods (parse anomalies) are
// skipped: an entry without periods would render nowhere and could never
// be addressed. Placing onto a missing table creates it.
func (c Collection) Place(tableID string, lec *lecture.Lecture) Collection {
	if lec == nil {
		return c
	}

	var added []Entry
	for _, m := range lecture.ParseSchedule(lec.Schedule) {
		if len(m.Periods) == 0 {
			continue
		}
		added = append(added, NewEntry(m, lec))
	}
	if len(added) == 0 {
		return c
	}

	return c.Update(tableID, func(entries []Entry) []Entry {
		out := make([]Entry, 0, len(entries)+len(added))
		out = append(out, entries...)
		return append(out, added...)
	})
}

// RemoveAt removes every entry of a table whose day matches and whose
// period range contains the given period. No-op if nothing matches.
func (c Collection) RemoveAt(tableID, day string, period int) Collection {
	entries, ok := c[tableID]
	if !ok {
		return c
	}

	kept := entries[:0:0]
	for _, e := range entries {
		if !e.Covers(day, period) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return c
	}

	out := c.clone()
	out[tableID] = kept
	return out
}

// RemoveEntry removes a single entry by its id. No-op if absent.
func (c Collection) RemoveEntry(tableID, entryID string) Collection {
	entries, ok := c[tableID]
	if !ok {
		return c
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c
	}

	kept := make([]Entry, 0, len(entries)-1)
	kept = append(kept, entries[:idx]...)
	kept = append(kept, entries[idx+1:]...)

	out := c.clone()
	out[tableID] = kept
	return out
}

// Replace swaps one entry, addressed by id, for a new value.
// Only the addressed table gets a fresh slice; every other table keeps
// its entry slice. Returns the collection unchanged if the table or
// entry is absent.
func (c Collection) Replace(tableID string, entry Entry) Collection {
	entries, ok := c[tableID]
	if !ok {
		return c
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entry.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c
	}

	replaced := make([]Entry, len(entries))
	copy(replaced, entries)
	replaced[idx] = entry

	out := c.clone()
	out[tableID] = replaced
	return out
}

// Find returns the entry with the given id in a table.
func (c Collection) Find(tableID, entryID string) (Entry, bool) {
	for _, e := range c[tableID] {
		if e.ID == entryID {
			return e, true
		}
	}
	return Entry{}, false
}

// EntryAt returns the topmost entry covering a day/period cell.
// Later entries win, matching their paint order on the grid.
func (c Collection) EntryAt(tableID, day string, period int) (Entry, bool) {
	entries := c[tableID]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Covers(day, period) {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// Lectures returns the distinct lectures of a table in first-occurrence
// order over its entry sequence.
func (c Collection) Lectures(tableID string) []*lecture.Lecture {
	seen := make(map[string]bool)
	var out []*lecture.Lecture
	for _, e := range c[tableID] {
		if e.Lecture == nil || seen[e.Lecture.ID] {
			continue
		}
		seen[e.Lecture.ID] = true
		out = append(out, e.Lecture)
	}
	return out
}
