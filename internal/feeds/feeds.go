// Package feeds implements the external threat feed fetchers. Each fetcher
// maps one source's raw payload shape into ioc.RawRecord and bounds its own
// network call; a failure surfaces as an error the orchestrator swallows.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent      = "iocfeed/1.0"
	defaultTimeout = 30 * time.Second

	BlocklistURL   = "https://lists.blocklist.de/lists/all.txt"
	SpamhausURL    = "https://www.spamhaus.org/drop/drop.txt"
	DigitalsideURL = "https://osint.digitalside.it/Threat-Intel/digitalside-misp-feed.json"
)

// NewClient returns the http.Client the fetchers share. A non-positive
// timeout falls back to the 30s default.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// get fetches url and returns the body. Non-2xx responses are errors.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
