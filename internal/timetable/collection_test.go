package timetable

import (
	"reflect"
	"testing"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

func sampleLecture() *lecture.Lecture {
	return &lecture.Lecture{
		ID:       "CS101-01",
		Title:    "자료구조",
		Grade:    2,
		Credits:  "3",
		Major:    "컴퓨터공학과",
		Schedule: "월1~2(101호)<p>화3(102호)",
	}
}

// sameSlice reports whether two entry slices share their backing array.
func sameSlice(a, b []Entry) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer() && len(a) == len(b)
}

func TestNew(t *testing.T) {
	col, id := New()
	if id == "" {
		t.Fatal("expected a seed table id")
	}
	if len(col) != 1 {
		t.Errorf("expected 1 table, got %d", len(col))
	}
	if col.Entries(id) != nil {
		t.Errorf("expected empty seed table, got %v", col.Entries(id))
	}
}

func TestCollection_Place(t *testing.T) {
	t.Run("appends one entry per meeting", func(t *testing.T) {
		col, id := New()
		col = col.Place(id, sampleLecture())

		entries := col.Entries(id)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Day != "월" || !reflect.DeepEqual(entries[0].Periods, []int{1, 2}) {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Day != "화" || !reflect.DeepEqual(entries[1].Periods, []int{3}) {
			t.Errorf("unexpected second entry: %+v", entries[1])
		}
		if entries[0].Lecture != entries[1].Lecture {
			t.Error("entries of one lecture should share the record")
		}
		if entries[0].ID == entries[1].ID {
			t.Error("entries must have distinct ids")
		}
	})

	t.Run("skips meetings without periods", func(t *testing.T) {
		col, id := New()
		col = col.Place(id, &lecture.Lecture{ID: "X", Schedule: "월5~2(역순)<p>수1(정상)"})

		entries := col.Entries(id)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Day != "수" {
			t.Errorf("expected the well-formed group, got %+v", entries[0])
		}
	})

	t.Run("nil lecture is a no-op", func(t *testing.T) {
		col, id := New()
		if got := col.Place(id, nil); len(got.Entries(id)) != 0 {
			t.Errorf("expected no entries, got %v", got.Entries(id))
		}
	})
}

func TestSetAll(t *testing.T) {
	col, id := New()
	col = col.Place(id, sampleLecture())

	t.Run("carried-over tables keep slice identity", func(t *testing.T) {
		got := SetAll(map[string][]Entry{id: col.Entries(id)})
		if !sameSlice(got.Entries(id), col.Entries(id)) {
			t.Error("carried-over table lost slice identity")
		}
	})

	t.Run("dropped tables disappear", func(t *testing.T) {
		got := SetAll(map[string][]Entry{"other": nil})
		if _, ok := got[id]; ok {
			t.Error("expected the old table to be gone")
		}
		if len(got) != 1 {
			t.Errorf("expected 1 table, got %d", len(got))
		}
	})
}

func TestCollection_Duplicate(t *testing.T) {
	t.Run("copies entries at call time", func(t *testing.T) {
		col, id := New()
		col = col.Place(id, sampleLecture())

		dup, newID := col.Duplicate(id)
		if newID == "" || newID == id {
			t.Fatalf("expected a fresh table id, got %q", newID)
		}
		if !reflect.DeepEqual(dup.Entries(newID), dup.Entries(id)) {
			t.Error("duplicate should copy the source entries")
		}
		if sameSlice(dup.Entries(newID), dup.Entries(id)) {
			t.Error("duplicate must not share the source slice")
		}

		// Mutating the duplicate leaves the source untouched.
		dup = dup.RemoveAt(newID, "월", 1)
		if len(dup.Entries(id)) != 2 {
			t.Errorf("source table changed: %v", dup.Entries(id))
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		col, _ := New()
		got, newID := col.Duplicate("nonexistent")
		if newID != "" {
			t.Errorf("expected empty id, got %q", newID)
		}
		if !reflect.DeepEqual(got, col) {
			t.Error("collection should be unchanged")
		}
	})
}

func TestCollection_Remove(t *testing.T) {
	t.Run("removes a table", func(t *testing.T) {
		col, id := New()
		col, second := col.Duplicate(id)
		col = col.Remove(second)
		if _, ok := col[second]; ok {
			t.Error("table should be gone")
		}
		if _, ok := col[id]; !ok {
			t.Error("other table should remain")
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		col, _ := New()
		got := col.Remove("nonexistent")
		if !reflect.DeepEqual(got, col) {
			t.Error("collection should be unchanged")
		}
	})
}

func TestCollection_Update(t *testing.T) {
	t.Run("absent table presents empty entries", func(t *testing.T) {
		col, _ := New()
		var seen []Entry
		called := false
		col = col.Update("ghost", func(entries []Entry) []Entry {
			called = true
			seen = entries
			return entries
		})
		if !called {
			t.Fatal("updater was not called")
		}
		if len(seen) != 0 {
			t.Errorf("expected empty entries, got %v", seen)
		}
		if _, ok := col["ghost"]; !ok {
			t.Error("update should materialize the table")
		}
	})

	t.Run("other tables keep slice identity", func(t *testing.T) {
		col, id := New()
		col = col.Place(id, sampleLecture())
		col, second := col.Duplicate(id)

		before := col.Entries(id)
		col = col.Update(second, func(entries []Entry) []Entry { return nil })
		if !sameSlice(before, col.Entries(id)) {
			t.Error("untouched table lost slice identity")
		}
	})
}

func TestCollection_RemoveAt(t *testing.T) {
	col, id := New()
	col = col.Place(id, sampleLecture())

	t.Run("removes entries covering the cell", func(t *testing.T) {
		got := col.RemoveAt(id, "월", 2)
		entries := got.Entries(id)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Day != "화" {
			t.Errorf("wrong entry removed: %+v", entries[0])
		}
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		got := col.RemoveAt(id, "금", 1)
		if !sameSlice(got.Entries(id), col.Entries(id)) {
			t.Error("entries should be untouched on miss")
		}
	})

	t.Run("absent table is a no-op", func(t *testing.T) {
		got := col.RemoveAt("nonexistent", "월", 1)
		if !reflect.DeepEqual(got, col) {
			t.Error("collection should be unchanged")
		}
	})
}

func TestCollection_Replace(t *testing.T) {
	col, id := New()
	col = col.Place(id, sampleLecture())
	col, other := col.Duplicate(id)

	target := col.Entries(id)[0]
	moved := target.Relocated("수", []int{4, 5})

	t.Run("replaces exactly one entry", func(t *testing.T) {
		got := col.Replace(id, moved)

		entries := got.Entries(id)
		if entries[0].Day != "수" || !reflect.DeepEqual(entries[0].Periods, []int{4, 5}) {
			t.Errorf("entry not replaced: %+v", entries[0])
		}
		if entries[0].ID != target.ID {
			t.Error("replacement must keep the entry id")
		}
		if entries[0].Lecture != target.Lecture {
			t.Error("replacement must keep the lecture reference")
		}
		if !reflect.DeepEqual(entries[1], col.Entries(id)[1]) {
			t.Error("sibling entry changed")
		}
		if !sameSlice(got.Entries(other), col.Entries(other)) {
			t.Error("other table lost slice identity")
		}
	})

	t.Run("unknown entry id is a no-op", func(t *testing.T) {
		ghost := moved
		ghost.ID = "nope"
		got := col.Replace(id, ghost)
		if !sameSlice(got.Entries(id), col.Entries(id)) {
			t.Error("entries should be untouched")
		}
	})
}

func TestCollection_EntryAt(t *testing.T) {
	col, id := New()
	col = col.Place(id, sampleLecture())
	col = col.Place(id, &lecture.Lecture{ID: "MA200-01", Title: "선형대수", Schedule: "월2(법학관)"})

	t.Run("topmost entry wins on overlap", func(t *testing.T) {
		e, ok := col.EntryAt(id, "월", 2)
		if !ok {
			t.Fatal("expected an entry")
		}
		if e.Lecture.ID != "MA200-01" {
			t.Errorf("expected the later placement on top, got %s", e.Lecture.ID)
		}
	})

	t.Run("miss returns false", func(t *testing.T) {
		if _, ok := col.EntryAt(id, "금", 1); ok {
			t.Error("expected no entry")
		}
	})
}

func TestCollection_Lectures(t *testing.T) {
	col, id := New()
	lec := sampleLecture()
	col = col.Place(id, lec)
	col = col.Place(id, &lecture.Lecture{ID: "MA200-01", Title: "선형대수", Schedule: "수1(법학관)"})

	lectures := col.Lectures(id)
	if len(lectures) != 2 {
		t.Fatalf("expected 2 distinct lectures, got %d", len(lectures))
	}
	if lectures[0].ID != "CS101-01" || lectures[1].ID != "MA200-01" {
		t.Errorf("expected first-occurrence order, got %v, %v", lectures[0].ID, lectures[1].ID)
	}
}
