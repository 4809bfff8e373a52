package mock

import (
	"context"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of shingidoc.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, text, filename, url string) (shingidoc.Category, error)
}

func (c *Classifier) Classify(ctx context.Context, text, filename, url string) (shingidoc.Category, error) {
	return c.ClassifyFn(ctx, text, filename, url)
}
