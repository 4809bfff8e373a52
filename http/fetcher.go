// Package http implements fetching and downloading over plain HTTP.
// Ministry sites block default client user agents intermittently, so the
// fetcher retries blocked responses once with browser-like headers.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/knakagawa/shingidoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBytes is the default response size limit.
const DefaultMaxBytes = 20 * 1024 * 1024

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Status codes that indicate UA-based blocking rather than a real failure.
var retryStatusCodes = map[int]bool{
	http.StatusForbidden:       true,
	http.StatusNotAcceptable:   true,
	http.StatusTooManyRequests: true,
}

var _ shingidoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves bytes from URLs. A request blocked with 403, 406 or 429
// is retried once with browser-like headers before giving up.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the response size limit.
// Defaults to DefaultMaxBytes (20MB) if not specified.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the bytes at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*shingidoc.FetchResult, error) {
	var lastErr error

	for _, browserHeaders := range []bool{false, true} {
		result, retryable, err := f.fetchOnce(ctx, url, browserHeaders)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, shingidoc.Errorf(shingidoc.EUNAVAILABLE, "failed to fetch URL: %s (%v)", url, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string, browserHeaders bool) (*shingidoc.FetchResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	req.Header.Set("Accept", "*/*")
	if browserHeaders {
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept", "text/html,application/pdf,application/octet-stream,*/*")
		req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Network errors get one browser-headers retry too.
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, retryStatusCodes[resp.StatusCode],
			shingidoc.Errorf(shingidoc.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, false, shingidoc.Errorf(shingidoc.EINVALID, "response too large (>%d bytes): %s", f.maxBytes, url)
	}

	return &shingidoc.FetchResult{
		URL:                url,
		FinalURL:           resp.Request.URL.String(),
		StatusCode:         resp.StatusCode,
		ContentType:        strings.ToLower(resp.Header.Get("Content-Type")),
		Body:               body,
		UsedBrowserHeaders: browserHeaders,
	}, false, nil
}
