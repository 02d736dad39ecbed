// Package images selects, downloads and houses the per-board image assets
// attached to forum posts.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher is the HTTP surface the selector and prefetcher depend on. Probe is
// the cheapest possible size check; Get fetches the raw bytes.
type Fetcher interface {
	Probe(ctx context.Context, url string) (int64, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher implements Fetcher on net/http.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(perRequestTimeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: perRequestTimeout}}
}

// Probe issues a HEAD request and returns the advertised Content-Length.
// A missing or unknown length is an error: such candidates cannot be
// admitted against a byte budget.
func (f *HTTPFetcher) Probe(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building probe for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probing %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("probing %s: status %d", url, resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("probing %s: no content length", url)
	}
	return resp.ContentLength, nil
}

// Get downloads the full body. Non-2xx statuses are errors.
func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}
