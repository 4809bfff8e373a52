package shingidoc

import "context"

// FetchResult holds the response of a single HTTP fetch.
type FetchResult struct {
	URL                string
	FinalURL           string
	StatusCode         int
	ContentType        string
	Body               []byte
	UsedBrowserHeaders bool
}

// Fetcher retrieves bytes from URLs. Implementations handle blocked-response
// retries (e.g., switching to browser-like headers) and response size limits.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// DownloadRecord is the per-candidate outcome of the download stage.
// Failures are recorded here, never propagated as run-level errors.
type DownloadRecord struct {
	Index              int    `json:"index"`
	URL                string `json:"url"`
	OriginalFilename   string `json:"original_filename"`
	SavedPath          string `json:"saved_path"`
	Downloaded         bool   `json:"downloaded"`
	SizeBytes          int    `json:"size_bytes,omitempty"`
	ContentType        string `json:"content_type,omitempty"`
	ContentHash        string `json:"content_hash,omitempty"`
	UsedBrowserHeaders bool   `json:"used_browser_headers,omitempty"`
	Error              string `json:"error,omitempty"`
}

// Downloader saves every selected candidate's bytes under dir. One record is
// returned per candidate in input order regardless of individual failures.
type Downloader interface {
	DownloadAll(ctx context.Context, dir string, candidates []*Candidate) []DownloadRecord
}
