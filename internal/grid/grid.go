// Package grid holds the shared timetable geometry and the relocation
// engine. The renderer, the drag clamp, and the commit-time validation
// all derive from the same Config, so they can never disagree about
// where a cell is.
package grid

import "fmt"

// Grid layout defaults, in terminal cells.
const (
	// DefaultCellWidth is the width of one day column.
	DefaultCellWidth = 14
	// DefaultCellHeight is the height of one period row.
	DefaultCellHeight = 2
	// DefaultHeaderWidth is the width of the time-label gutter.
	DefaultHeaderWidth = 6
	// DefaultHeaderHeight is the height of the day-label header row.
	DefaultHeaderHeight = 1
)

// defaultDays is the institution's weekday ordering. Index arithmetic on
// day deltas depends on this order.
var defaultDays = []string{"월", "화", "수", "목", "금", "토"}

// Period timing: periods 1..halfHourPeriods are half-hour intervals from
// dayStartMinutes; the remaining evening periods are longer blocks.
const (
	dayStartMinutes = 9 * 60 // 09:00
	halfHourPeriods = 18     // periods 1..18 cover 09:00-18:00
)

// eveningDurations lists the minute lengths of the periods after the
// half-hour cutoff.
var eveningDurations = []int{60, 60, 90}

// slotLabels holds the precomputed "HH:MM" start label of every period,
// 0-indexed by period-1. Built once at package init; static configuration.
var slotLabels []string

func init() {
	mins := dayStartMinutes
	for p := 0; p < halfHourPeriods; p++ {
		slotLabels = append(slotLabels, minutesToLabel(mins))
		mins += 30
	}
	for _, d := range eveningDurations {
		slotLabels = append(slotLabels, minutesToLabel(mins))
		mins += d
	}
}

func minutesToLabel(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Config is the single source of truth for grid geometry, shared by the
// renderer and the drag-relocation engine.
type Config struct {
	CellWidth    int
	CellHeight   int
	HeaderWidth  int
	HeaderHeight int
	Days         []string
	NumSlots     int
}

// Default returns the standard grid configuration.
func Default() Config {
	return Config{
		CellWidth:    DefaultCellWidth,
		CellHeight:   DefaultCellHeight,
		HeaderWidth:  DefaultHeaderWidth,
		HeaderHeight: DefaultHeaderHeight,
		Days:         defaultDays,
		NumSlots:     len(slotLabels),
	}
}

// NumDays returns the number of day columns.
func (c Config) NumDays() int {
	return len(c.Days)
}

// DayIndex returns the index of a day label, or -1 if it is not one of
// the configured days.
func (c Config) DayIndex(day string) int {
	for i, d := range c.Days {
		if d == day {
			return i
		}
	}
	return -1
}

// SlotLabel returns the "HH:MM" start label of a 1-based period, or an
// empty string for an out-of-range period.
func (c Config) SlotLabel(period int) string {
	if period < 1 || period > len(slotLabels) {
		return ""
	}
	return slotLabels[period-1]
}

// Width returns the total grid width including the label gutter.
func (c Config) Width() int {
	return c.HeaderWidth + c.CellWidth*c.NumDays()
}

// Height returns the total grid height including the day header.
func (c Config) Height() int {
	return c.HeaderHeight + c.CellHeight*c.NumSlots
}

// Rect is an absolute box on the grid, in terminal cells.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the first column past the box.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the first row past the box.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Box computes the absolute box of an entry placed at a day index with
// the given period range. Returns false for an out-of-range day or an
// empty range.
func (c Config) Box(dayIndex int, periods []int) (Rect, bool) {
	if dayIndex < 0 || dayIndex >= c.NumDays() || len(periods) == 0 {
		return Rect{}, false
	}
	return Rect{
		Left:   c.HeaderWidth + c.CellWidth*dayIndex,
		Top:    c.HeaderHeight + c.CellHeight*(periods[0]-1),
		Width:  c.CellWidth,
		Height: c.CellHeight * len(periods),
	}, true
}

// HitTest maps an absolute grid position to a day index and 1-based
// period. Returns false for the gutter, the header, or anywhere outside
// the drawable area.
func (c Config) HitTest(x, y int) (dayIndex, period int, ok bool) {
	x -= c.HeaderWidth
	y -= c.HeaderHeight
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	dayIndex = x / c.CellWidth
	period = y/c.CellHeight + 1
	if dayIndex >= c.NumDays() || period > c.NumSlots {
		return 0, 0, false
	}
	return dayIndex, period, true
}
