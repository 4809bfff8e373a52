package mock

import (
	"context"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of shingidoc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*shingidoc.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*shingidoc.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ shingidoc.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of shingidoc.Downloader.
type Downloader struct {
	DownloadAllFn func(ctx context.Context, dir string, candidates []*shingidoc.Candidate) []shingidoc.DownloadRecord
}

func (d *Downloader) DownloadAll(ctx context.Context, dir string, candidates []*shingidoc.Candidate) []shingidoc.DownloadRecord {
	return d.DownloadAllFn(ctx, dir, candidates)
}
