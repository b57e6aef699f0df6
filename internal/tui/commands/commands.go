// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjae-ko/siganpyo/internal/catalog"
	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// CatalogLoadedMsg is sent when the lecture catalog has been fetched.
type CatalogLoadedMsg struct {
	Resource string
	Lectures []*lecture.Lecture
}

// CatalogErrMsg is sent when the catalog fetch fails.
type CatalogErrMsg struct {
	Resource string
	Err      error
}

// SnapshotLoadedMsg is sent when an offline snapshot has been read.
// Lectures is empty when no snapshot exists for the resource.
type SnapshotLoadedMsg struct {
	Resource  string
	Lectures  []*lecture.Lecture
	FetchedAt time.Time
}

// SnapshotSavedMsg is sent after the fetched catalog was written to disk.
type SnapshotSavedMsg struct {
	Resource string
	Err      error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FilterDebounceMsg fires after the search input has been quiet for the
// debounce interval. Seq identifies the keystroke that scheduled it; a
// stale sequence is ignored.
type FilterDebounceMsg struct {
	Seq int
}

// LoadCatalog fetches the lecture catalog through the session cache.
// Concurrent loads of the same resource share one request.
func LoadCatalog(cache *catalog.Cache, resource string) tea.Cmd {
	return func() tea.Msg {
		lectures, err := cache.Get(context.Background(), resource)
		if err != nil {
			return CatalogErrMsg{Resource: resource, Err: err}
		}
		return CatalogLoadedMsg{Resource: resource, Lectures: lectures}
	}
}

// LoadSnapshot reads the last stored catalog for a resource from disk.
func LoadSnapshot(store *catalog.SnapshotStore, resource string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		lectures, err := store.Load(ctx, resource)
		if err != nil {
			return ErrMsg{Err: err}
		}
		fetchedAt, err := store.FetchedAt(ctx, resource)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return SnapshotLoadedMsg{Resource: resource, Lectures: lectures, FetchedAt: fetchedAt}
	}
}

// SaveSnapshot writes a fetched catalog to the snapshot store.
func SaveSnapshot(store *catalog.SnapshotStore, resource string, lectures []*lecture.Lecture) tea.Cmd {
	return func() tea.Msg {
		err := store.Save(context.Background(), resource, lectures)
		return SnapshotSavedMsg{Resource: resource, Err: err}
	}
}

// DebounceFilter schedules a FilterDebounceMsg with the given sequence.
func DebounceFilter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FilterDebounceMsg{Seq: seq}
	})
}

// Status creates a command that shows a temporary status message.
func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}
