package grid

import "github.com/minjae-ko/siganpyo/internal/timetable"

// SnapDelta converts a drag delta in terminal cells into whole-cell day
// and period deltas using floor division, so a negative delta crossing a
// cell boundary shifts by one even before reaching a full cell's worth.
func (c Config) SnapDelta(dx, dy int) (dayDelta, slotDelta int) {
	return floorDiv(dx, c.CellWidth), floorDiv(dy, c.CellHeight)
}

// floorDiv is integer division truncating toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Relocate computes the snapped, bounds-checked new position of one
// entry and commits it, or rejects the move and returns the collection
// unchanged.
//
// The move is rejected when the target day falls outside the configured
// days or any shifted period would become non-positive. Rejection is
// silent: the caller simply keeps the old collection and the block snaps
// back visually. On commit exactly one entry in exactly one table is
// replaced; every other table keeps its entry slice.
func (c Config) Relocate(col timetable.Collection, tableID, entryID string, dx, dy int) (timetable.Collection, bool) {
	entry, ok := col.Find(tableID, entryID)
	if !ok {
		return col, false
	}

	dayIndex := c.DayIndex(entry.Day)
	if dayIndex < 0 {
		return col, false
	}

	dayDelta, slotDelta := c.SnapDelta(dx, dy)

	newDay := dayIndex + dayDelta
	if newDay < 0 || newDay >= c.NumDays() {
		return col, false
	}

	newPeriods := make([]int, len(entry.Periods))
	for i, p := range entry.Periods {
		shifted := p + slotDelta
		if shifted <= 0 {
			return col, false
		}
		newPeriods[i] = shifted
	}

	return col.Replace(tableID, entry.Relocated(c.Days[newDay], newPeriods)), true
}

// ClampDrag restricts a live drag translation so the dragged box stays
// inside the drawable area, and snaps it to whole cells. The in-flight
// position therefore always lands on a cell boundary, not just at drop
// time. The bounds come from the same geometry the commit validation
// uses.
func (c Config) ClampDrag(box Rect, dx, dy int) (int, int) {
	dx = roundToStep(dx, c.CellWidth)
	dy = roundToStep(dy, c.CellHeight)

	minX := c.HeaderWidth - box.Left
	maxX := c.Width() - box.Right()
	minY := c.HeaderHeight - box.Top
	maxY := c.Height() - box.Bottom()

	return clamp(dx, minX, maxX), clamp(dy, minY, maxY)
}

// roundToStep snaps v to the nearest multiple of step.
func roundToStep(v, step int) int {
	if step <= 0 {
		return v
	}
	half := step / 2
	if v >= 0 {
		return ((v + half) / step) * step
	}
	return -(((-v + half) / step) * step)
}

func clamp(v, lo, hi int) int {
	if lo > hi {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
