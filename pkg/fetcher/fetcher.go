// Package fetcher downloads linked resources during dataset discovery and
// exposes the declared content type alongside the bytes.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Resource is the outcome of a single successful fetch.
type Resource struct {
	Data        []byte
	ContentType string
	// URL is the resolved absolute URL actually requested.
	URL string
}

// Error reports a failed fetch of a single resource. Callers skip the
// candidate and move on; there are no retries.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher whose requests are bounded by timeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch resolves rawURL against baseURL when relative, performs a GET and
// returns the body, the declared Content-Type and the resolved URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, baseURL string) (*Resource, error) {
	resolved, err := Resolve(rawURL, baseURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, &Error{URL: resolved, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: resolved, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: resolved, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: resolved, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Resource{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         resolved,
	}, nil
}

// Resolve joins a possibly relative URL with a base, mirroring what a
// browser would request for the href.
func Resolve(rawURL, baseURL string) (string, error) {
	if baseURL == "" {
		return rawURL, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL %q: %w", baseURL, err)
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %q: %w", rawURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}
