// Package slog provides logging decorators for shingidoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with per-call logging. Oracle calls
// are slow and billed, so each one is worth a log line.
type LoggingClassifier struct {
	next   shingidoc.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next shingidoc.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier, logging the outcome.
func (c *LoggingClassifier) Classify(ctx context.Context, text, filename, url string) (shingidoc.Category, error) {
	begin := time.Now()
	category, err := c.next.Classify(ctx, text, filename, url)
	if err != nil {
		c.logger.Warn("document classification failed",
			"url", url,
			"error", err,
			"duration", time.Since(begin),
		)
		return category, err
	}

	c.logger.Info("document classified",
		"url", url,
		"category", string(category),
		"duration", time.Since(begin),
	)
	return category, nil
}
