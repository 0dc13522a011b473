package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnavailable covers every failed fetch: transport error, timeout or
	// non-success status. Callers skip the page or item and carry on.
	ErrUnavailable = errors.New("page unavailable")
	// ErrBlocked marks an anti-automation interstitial. It wraps ErrUnavailable.
	ErrBlocked = fmt.Errorf("blocked by anti-bot check: %w", ErrUnavailable)
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 8 << 20

// robotCheckMarkers identify the captcha page served instead of content.
var robotCheckMarkers = [][]byte{
	[]byte("/errors/validateCaptcha"),
	[]byte("Robot Check"),
	[]byte("api-services-support@amazon.com"),
}

// Fetcher retrieves the raw markup for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches pages with a plain HTTP client. Each call is bounded
// by the client timeout and is never retried.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrUnavailable, url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d for %s", ErrUnavailable, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", ErrUnavailable, url, err)
	}
	if IsRobotCheck(body) {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, url)
	}
	return body, nil
}

// IsRobotCheck reports whether body looks like a captcha interstitial.
func IsRobotCheck(body []byte) bool {
	for _, m := range robotCheckMarkers {
		if bytes.Contains(body, m) {
			return true
		}
	}
	return false
}
