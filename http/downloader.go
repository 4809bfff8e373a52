package http

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/fs"
)

// DefaultDownloadConcurrency bounds parallel downloads.
const DefaultDownloadConcurrency = 4

// DefaultRequestsPerSecond is the default politeness rate toward the
// ministry host.
const DefaultRequestsPerSecond = 2

var pdfMagic = []byte("%PDF-")

var _ shingidoc.Downloader = (*Downloader)(nil)

// Downloader saves selected candidates' PDFs concurrently. Requests share a
// rate limiter so parallelism never turns into hammering the source host.
type Downloader struct {
	fetcher     shingidoc.Fetcher
	limiter     *rate.Limiter
	concurrency int
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithConcurrency sets the number of parallel downloads.
// Defaults to DefaultDownloadConcurrency if not specified.
func WithConcurrency(n int) DownloaderOption {
	return func(d *Downloader) {
		d.concurrency = n
	}
}

// WithRateLimit sets the request rate limit shared by all downloads.
// Defaults to DefaultRequestsPerSecond if not specified.
func WithRateLimit(rps float64) DownloaderOption {
	return func(d *Downloader) {
		d.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewDownloader creates a Downloader on top of fetcher.
func NewDownloader(fetcher shingidoc.Fetcher, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		fetcher:     fetcher,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		concurrency: DefaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DownloadAll fetches every candidate and writes the bytes under dir. One
// record is returned per candidate in input order; individual failures are
// recorded, never propagated.
func (d *Downloader) DownloadAll(ctx context.Context, dir string, candidates []*shingidoc.Candidate) []shingidoc.DownloadRecord {
	records := make([]shingidoc.DownloadRecord, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			records[i] = d.downloadOne(ctx, dir, i+1, c)
			return nil
		})
	}
	g.Wait()

	return records
}

func (d *Downloader) downloadOne(ctx context.Context, dir string, index int, c *shingidoc.Candidate) shingidoc.DownloadRecord {
	rec := shingidoc.DownloadRecord{
		Index:            index,
		URL:              c.URL,
		OriginalFilename: c.Filename,
		SavedPath:        filepath.Join(dir, fs.SelectedFileName(index, c.Text, c.Filename)),
	}

	if err := d.limiter.Wait(ctx); err != nil {
		rec.Error = err.Error()
		return rec
	}

	result, err := d.fetcher.Fetch(ctx, c.URL)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	rec.ContentType = result.ContentType
	rec.UsedBrowserHeaders = result.UsedBrowserHeaders

	if !isPDFContent(result.ContentType, result.Body) {
		rec.Error = fmt.Sprintf("selected file is not PDF: url=%s, content_type=%q", c.URL, result.ContentType)
		return rec
	}

	if err := os.WriteFile(rec.SavedPath, result.Body, 0o644); err != nil {
		rec.Error = fmt.Sprintf("save pdf: %v", err)
		return rec
	}

	rec.Downloaded = true
	rec.SizeBytes = len(result.Body)
	rec.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64(result.Body))
	return rec
}

// isPDFContent accepts either a PDF content type or the PDF magic bytes;
// some servers label PDFs application/octet-stream.
func isPDFContent(contentType string, body []byte) bool {
	if strings.Contains(contentType, "pdf") {
		return true
	}
	return bytes.HasPrefix(body, pdfMagic)
}
