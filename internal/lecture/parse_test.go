package lecture

import (
	"reflect"
	"testing"
)

func TestParseSchedule(t *testing.T) {
	t.Run("two groups", func(t *testing.T) {
		got := ParseSchedule("월1~2(101호)<p>화3(102호)")
		want := []Meeting{
			{Day: "월", Periods: []int{1, 2}, Room: "101호"},
			{Day: "화", Periods: []int{3}, Room: "102호"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := ParseSchedule(""); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("single period", func(t *testing.T) {
		got := ParseSchedule("수5(201호)")
		if len(got) != 1 {
			t.Fatalf("expected 1 meeting, got %d", len(got))
		}
		if got[0].Day != "수" {
			t.Errorf("expected day 수, got %q", got[0].Day)
		}
		if !reflect.DeepEqual(got[0].Periods, []int{5}) {
			t.Errorf("expected periods [5], got %v", got[0].Periods)
		}
		if got[0].Room != "201호" {
			t.Errorf("expected room 201호, got %q", got[0].Room)
		}
	})

	t.Run("long range", func(t *testing.T) {
		got := ParseSchedule("금2~6(실습실)")
		want := []int{2, 3, 4, 5, 6}
		if !reflect.DeepEqual(got[0].Periods, want) {
			t.Errorf("expected periods %v, got %v", want, got[0].Periods)
		}
	})

	t.Run("reversed range is a parse anomaly", func(t *testing.T) {
		got := ParseSchedule("월5~2(101호)")
		if len(got) != 1 {
			t.Fatalf("expected 1 meeting, got %d", len(got))
		}
		if len(got[0].Periods) != 0 {
			t.Errorf("expected empty periods, got %v", got[0].Periods)
		}
		if got[0].Day != "월" {
			t.Errorf("day should still parse, got %q", got[0].Day)
		}
	})

	t.Run("no digits degrades to empty periods", func(t *testing.T) {
		got := ParseSchedule("미정")
		if len(got) != 1 {
			t.Fatalf("expected 1 meeting, got %d", len(got))
		}
		if got[0].Day != "미정" {
			t.Errorf("expected day 미정, got %q", got[0].Day)
		}
		if len(got[0].Periods) != 0 {
			t.Errorf("expected empty periods, got %v", got[0].Periods)
		}
		if got[0].Room != "" {
			t.Errorf("expected empty room, got %q", got[0].Room)
		}
	})

	t.Run("missing room", func(t *testing.T) {
		got := ParseSchedule("화3~4")
		if got[0].Room != "" {
			t.Errorf("expected empty room, got %q", got[0].Room)
		}
		if !reflect.DeepEqual(got[0].Periods, []int{3, 4}) {
			t.Errorf("expected periods [3 4], got %v", got[0].Periods)
		}
	})

	t.Run("groups keep input order", func(t *testing.T) {
		got := ParseSchedule("목1(A)<p>월2(B)<p>화3(C)")
		days := []string{"목", "월", "화"}
		for i, d := range days {
			if got[i].Day != d {
				t.Errorf("group %d: expected day %q, got %q", i, d, got[i].Day)
			}
		}
	})
}

func TestParseCache(t *testing.T) {
	t.Run("returns same slice for same input", func(t *testing.T) {
		c := NewParseCache()
		a := c.Parse("월1~2(101호)")
		b := c.Parse("월1~2(101호)")
		if len(a) == 0 || len(b) == 0 {
			t.Fatal("expected parsed meetings")
		}
		if &a[0] != &b[0] {
			t.Error("expected memoized result, got a fresh parse")
		}
		if c.Len() != 1 {
			t.Errorf("expected 1 cached entry, got %d", c.Len())
		}
	})

	t.Run("distinct inputs cached separately", func(t *testing.T) {
		c := NewParseCache()
		c.Parse("월1(A)")
		c.Parse("화2(B)")
		if c.Len() != 2 {
			t.Errorf("expected 2 cached entries, got %d", c.Len())
		}
	})
}

func TestFilterMatches(t *testing.T) {
	cache := NewParseCache()
	lec := &Lecture{
		ID:       "CS101-01",
		Title:    "자료구조",
		Grade:    2,
		Credits:  "3",
		Major:    "컴퓨터공학과",
		Schedule: "월3~4(301호)<p>수3(301호)",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"title substring", Filter{Query: "자료"}, true},
		{"title miss", Filter{Query: "운영체제"}, false},
		{"major match", Filter{Major: "컴퓨터공학과"}, true},
		{"major miss", Filter{Major: "수학과"}, false},
		{"grade match", Filter{Grade: 2}, true},
		{"grade miss", Filter{Grade: 3}, false},
		{"day match", Filter{Day: "월"}, true},
		{"day miss", Filter{Day: "금"}, false},
		{"day and period match", Filter{Day: "월", Period: 3}, true},
		{"day and period split across groups", Filter{Day: "수", Period: 3}, true},
		{"period outside range", Filter{Day: "월", Period: 5}, false},
		{"period on wrong day", Filter{Day: "수", Period: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(lec, cache); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("filter agrees with parser output", func(t *testing.T) {
		// Every (day, period) pair the parser produces must be found by
		// the filter, and nothing else.
		meetings := cache.Parse(lec.Schedule)
		for _, m := range meetings {
			for _, p := range m.Periods {
				f := Filter{Day: m.Day, Period: p}
				if !f.Matches(lec, cache) {
					t.Errorf("filter missed parsed pair (%s, %d)", m.Day, p)
				}
			}
		}
	})

	t.Run("nil lecture never matches", func(t *testing.T) {
		if (Filter{}).Matches(nil, cache) {
			t.Error("nil lecture matched")
		}
	})
}
