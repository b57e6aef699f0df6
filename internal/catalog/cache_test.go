package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// fakeFetcher counts fetches and can block until released to let tests
// pile up concurrent callers on one in-flight request.
type fakeFetcher struct {
	calls   atomic.Int64
	gate    chan struct{}
	result  []*lecture.Lecture
	err     error
	failing atomic.Bool
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]*lecture.Lecture, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.failing.Load() {
		return nil, f.err
	}
	return f.result, nil
}

func TestCache_Get(t *testing.T) {
	t.Run("fetches once per resource", func(t *testing.T) {
		f := &fakeFetcher{result: []*lecture.Lecture{{ID: "CS101-01"}}}
		c := NewCache(f)

		for i := 0; i < 3; i++ {
			got, err := c.Get(context.Background(), "2026-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 || got[0].ID != "CS101-01" {
				t.Fatalf("unexpected result: %v", got)
			}
		}
		if n := f.calls.Load(); n != 1 {
			t.Errorf("expected 1 fetch, got %d", n)
		}
	})

	t.Run("distinct resources fetch separately", func(t *testing.T) {
		f := &fakeFetcher{result: []*lecture.Lecture{{ID: "X"}}}
		c := NewCache(f)

		_, _ = c.Get(context.Background(), "2026-1")
		_, _ = c.Get(context.Background(), "2026-2")
		if n := f.calls.Load(); n != 2 {
			t.Errorf("expected 2 fetches, got %d", n)
		}
	})

	t.Run("concurrent callers share one flight", func(t *testing.T) {
		f := &fakeFetcher{
			result: []*lecture.Lecture{{ID: "CS101-01"}},
			gate:   make(chan struct{}),
		}
		c := NewCache(f)

		const callers = 8
		var wg sync.WaitGroup
		results := make([][]*lecture.Lecture, callers)
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				results[i], _ = c.Get(context.Background(), "2026-1")
			}(i)
		}

		close(f.gate)
		wg.Wait()

		if n := f.calls.Load(); n != 1 {
			t.Errorf("expected 1 fetch for %d callers, got %d", callers, n)
		}
		for i := range results {
			if len(results[i]) != 1 {
				t.Errorf("caller %d got %v", i, results[i])
			}
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		f := &fakeFetcher{err: errors.New("network down")}
		f.failing.Store(true)
		c := NewCache(f)

		if _, err := c.Get(context.Background(), "2026-1"); err == nil {
			t.Fatal("expected an error")
		}

		f.failing.Store(false)
		f.result = []*lecture.Lecture{{ID: "CS101-01"}}
		got, err := c.Get(context.Background(), "2026-1")
		if err != nil {
			t.Fatalf("retry after failure errored: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("unexpected result: %v", got)
		}
		if n := f.calls.Load(); n != 2 {
			t.Errorf("expected 2 fetches, got %d", n)
		}
	})
}

func TestCache_Invalidate(t *testing.T) {
	f := &fakeFetcher{result: []*lecture.Lecture{{ID: "CS101-01"}}}
	c := NewCache(f)

	_, _ = c.Get(context.Background(), "2026-1")
	c.Invalidate("2026-1")
	_, _ = c.Get(context.Background(), "2026-1")

	if n := f.calls.Load(); n != 2 {
		t.Errorf("expected refetch after invalidate, got %d fetches", n)
	}
}

func TestCache_Put(t *testing.T) {
	f := &fakeFetcher{result: []*lecture.Lecture{{ID: "fresh"}}}
	c := NewCache(f)

	c.Put("2026-1", []*lecture.Lecture{{ID: "snapshot"}})
	got, err := c.Get(context.Background(), "2026-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "snapshot" {
		t.Errorf("expected primed snapshot, got %v", got)
	}
	if n := f.calls.Load(); n != 0 {
		t.Errorf("primed cache should not fetch, got %d fetches", n)
	}
}
