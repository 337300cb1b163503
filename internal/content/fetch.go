package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/starford/dossier/internal/storage"
)

// HTTPFetcher GETs content from a static asset host.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher fetches locations relative to baseURL. A zero timeout
// leaves requests bounded only by the caller's context.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch issues one GET. Any non-2xx status is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+location, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("content: fetch %s: %s", location, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("content: read body %s: %w", location, err)
	}
	return body, nil
}

// FSFetcher reads content straight from the content tree.
type FSFetcher struct {
	store storage.Provider
}

// NewFSFetcher creates a fetcher over store.
func NewFSFetcher(store storage.Provider) *FSFetcher {
	return &FSFetcher{store: store}
}

// Fetch reads location relative to the content root.
func (f *FSFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.store.Read(strings.TrimPrefix(location, "/"))
}
