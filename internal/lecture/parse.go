package lecture

import (
	"strconv"
	"strings"
	"unicode"
)

// groupDelimiter separates independent day/time/room groups within one
// lecture's schedule string, e.g. "월1~2(101호)<p>화3(102호)".
const groupDelimiter = "<p>"

// ParseSchedule converts a raw schedule string into structured meetings,
// one per delimiter-separated group, in input order.
//
// Each group is split into a leading run of non-digit runes (the day
// label), a period range of the form "N" or "N~M" (expanded to the inclusive
// period sequence), and a trailing room token with literal parentheses
// stripped. Malformed groups degrade to empty fields rather than errors:
// a group with no digits yields no periods, and "N~M" with N > M yields
// an empty period sequence.
//
// An empty input returns nil. The function is pure; callers that parse
// repeatedly over the static catalog should go through a ParseCache.
func ParseSchedule(s string) []Meeting {
	if s == "" {
		return nil
	}

	groups := strings.Split(s, groupDelimiter)
	meetings := make([]Meeting, 0, len(groups))
	for _, g := range groups {
		meetings = append(meetings, parseGroup(g))
	}
	return meetings
}

// parseGroup parses a single day/time/room group.
func parseGroup(g string) Meeting {
	runes := []rune(g)

	// Day label: everything before the first digit.
	i := 0
	for i < len(runes) && !unicode.IsDigit(runes[i]) {
		i++
	}
	day := strings.TrimSpace(string(runes[:i]))

	// Period range: digits, optionally "~" and more digits.
	start, i := scanNumber(runes, i)
	end := start
	hasRange := false
	if i < len(runes) && runes[i] == '~' {
		hasRange = true
		end, i = scanNumber(runes, i+1)
	}

	// Room: the remainder with literal parentheses removed.
	room := string(runes[i:])
	room = strings.ReplaceAll(room, "(", "")
	room = strings.ReplaceAll(room, ")", "")
	room = strings.TrimSpace(room)

	return Meeting{
		Day:     day,
		Periods: expandPeriods(start, end, hasRange),
		Room:    room,
	}
}

// scanNumber reads a run of digits starting at i.
// Returns 0 and the unchanged index if no digits are present.
func scanNumber(runes []rune, i int) (int, int) {
	j := i
	for j < len(runes) && unicode.IsDigit(runes[j]) {
		j++
	}
	if j == i {
		return 0, i
	}
	n, err := strconv.Atoi(string(runes[i:j]))
	if err != nil {
		return 0, j
	}
	return n, j
}

// expandPeriods expands a period range into its period sequence.
// "N" yields [N]; "N~M" yields [N..M] inclusive. A missing number or a
// reversed range is a parse anomaly and yields no periods.
func expandPeriods(start, end int, hasRange bool) []int {
	if start <= 0 {
		return nil
	}
	if !hasRange {
		return []int{start}
	}
	if end < start {
		return nil
	}
	periods := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		periods = append(periods, p)
	}
	return periods
}
