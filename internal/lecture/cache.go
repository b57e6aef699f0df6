package lecture

// ParseCache memoizes ParseSchedule keyed on the exact input string.
// The catalog is static for a session while the search filter re-parses
// the same schedule strings on every keystroke, so hits dominate.
//
// The cache is not safe for concurrent use; the TUI event loop is the
// only caller.
type ParseCache struct {
	meetings map[string][]Meeting
}

// NewParseCache creates an empty parse cache.
func NewParseCache() *ParseCache {
	return &ParseCache{meetings: make(map[string][]Meeting)}
}

// Parse returns the parsed meetings for a schedule string, computing and
// storing them on first use. Callers must not mutate the result.
func (c *ParseCache) Parse(s string) []Meeting {
	if m, ok := c.meetings[s]; ok {
		return m
	}
	m := ParseSchedule(s)
	c.meetings[s] = m
	return m
}

// Len returns the number of distinct schedule strings cached.
func (c *ParseCache) Len() int {
	return len(c.meetings)
}
