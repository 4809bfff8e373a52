package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   shingidoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next shingidoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*shingidoc.FetchResult, error) {
	begin := time.Now()
	result, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch failed",
			"url", url,
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}

	f.logger.Info("fetch completed",
		"url", url,
		"status", result.StatusCode,
		"bytes", len(result.Body),
		"browser_headers", result.UsedBrowserHeaders,
		"duration", time.Since(begin),
	)
	return result, nil
}
