package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := OpenSnapshot(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("opening snapshot store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lectures := []*lecture.Lecture{
		{ID: "CS101-01", Title: "자료구조", Grade: 2, Credits: "3", Major: "컴퓨터공학과", Schedule: "월1~2(101호)"},
		{ID: "MA200-01", Title: "선형대수", Grade: 1, Credits: "3", Major: "수학과", Schedule: "화3(102호)"},
	}

	if err := s.Save(ctx, "2026-1", lectures); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}

	got, err := s.Load(ctx, "2026-1")
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lectures, got %d", len(got))
	}
	if got[0].ID != "CS101-01" || got[1].ID != "MA200-01" {
		t.Errorf("catalog order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Schedule != "월1~2(101호)" {
		t.Errorf("unexpected schedule: %q", got[0].Schedule)
	}

	stamp, err := s.FetchedAt(ctx, "2026-1")
	if err != nil {
		t.Fatalf("reading stamp: %v", err)
	}
	if stamp.IsZero() {
		t.Error("expected a fetch timestamp")
	}
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Save(ctx, "2026-1", []*lecture.Lecture{{ID: "OLD-01", Title: "폐강"}})
	if err := s.Save(ctx, "2026-1", []*lecture.Lecture{{ID: "NEW-01", Title: "신규"}}); err != nil {
		t.Fatalf("saving replacement: %v", err)
	}

	got, err := s.Load(ctx, "2026-1")
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if len(got) != 1 || got[0].ID != "NEW-01" {
		t.Errorf("old snapshot not replaced: %v", got)
	}
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty snapshot, got %v", got)
	}

	stamp, err := s.FetchedAt(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stamp.IsZero() {
		t.Errorf("expected zero stamp, got %v", stamp)
	}
}

func TestSnapshotStore_ResourcesAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Save(ctx, "2026-1", []*lecture.Lecture{{ID: "A"}})
	_ = s.Save(ctx, "2026-2", []*lecture.Lecture{{ID: "B"}, {ID: "C"}})

	first, _ := s.Load(ctx, "2026-1")
	second, _ := s.Load(ctx, "2026-2")
	if len(first) != 1 || len(second) != 2 {
		t.Errorf("resources bleed: %d and %d lectures", len(first), len(second))
	}
}
