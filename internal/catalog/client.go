// Package catalog fetches the lecture catalog and caches it per session.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// Fetcher retrieves the lecture list for a named resource.
type Fetcher interface {
	Fetch(ctx context.Context, resource string) ([]*lecture.Lecture, error)
}

// Client fetches lecture catalogs over HTTP. The catalog endpoint serves
// a JSON array of lecture records per resource name.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch retrieves and decodes the lecture list for a resource.
func (c *Client) Fetch(ctx context.Context, resource string) ([]*lecture.Lecture, error) {
	u, err := url.JoinPath(c.baseURL, url.PathEscape(resource)+".json")
	if err != nil {
		return nil, fmt.Errorf("building catalog url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog %q: %w", resource, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog %q: unexpected status %s", resource, resp.Status)
	}

	var lectures []*lecture.Lecture
	if err := json.NewDecoder(resp.Body).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("decoding catalog %q: %w", resource, err)
	}

	return lectures, nil
}
