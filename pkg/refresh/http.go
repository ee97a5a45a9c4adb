package refresh

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource fetches a URL, using the ETag response header as the version
// and If-None-Match for conditional requests.
type HTTPSource struct {
	// URL is the resource to fetch.
	URL string

	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, version string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: build request for %s: %w", s.URL, err)
	}
	if version != "" {
		req.Header.Set("If-None-Match", version)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil, "", ErrNotModified
	case resp.StatusCode != http.StatusOK:
		return nil, "", fmt.Errorf("refresh: fetch %s: unexpected status %s", s.URL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: read body of %s: %w", s.URL, err)
	}
	return data, resp.Header.Get("ETag"), nil
}
