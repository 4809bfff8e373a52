// Package readability provides a second-chance content extractor for
// meeting pages whose markup defeats the primary extractor. Government
// sites built on older CMSes often lack the semantic structure trafilatura
// relies on; readability's candidate-scoring heuristics handle them better.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*shingidoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, shingidoc.Errorf(shingidoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "readability extraction failed: %v", err)
	}

	return &shingidoc.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}

var _ shingidoc.Extractor = (*Fallback)(nil)

// Fallback chains a primary extractor with readability. The primary result
// wins whenever it carries content; readability is consulted when the
// primary errors or comes back empty.
type Fallback struct {
	primary  shingidoc.Extractor
	fallback *Extractor
}

// NewFallback creates a Fallback around the given primary extractor.
func NewFallback(primary shingidoc.Extractor) *Fallback {
	return &Fallback{primary: primary, fallback: NewExtractor()}
}

// Extract tries the primary extractor first, then readability.
func (f *Fallback) Extract(rawHTML string) (*shingidoc.ExtractResult, error) {
	result, primaryErr := f.primary.Extract(rawHTML)
	if primaryErr == nil && result.ContentHTML != "" {
		return result, nil
	}

	fallbackResult, err := f.fallback.Extract(rawHTML)
	if err != nil {
		if primaryErr != nil {
			return nil, primaryErr
		}
		return nil, err
	}

	// The primary's title is usually cleaner even when its content is not.
	if primaryErr == nil && result.Title != "" && fallbackResult.Title == "" {
		fallbackResult.Title = result.Title
	}
	return fallbackResult, nil
}
