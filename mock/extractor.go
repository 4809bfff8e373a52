package mock

import "github.com/knakagawa/shingidoc"

var _ shingidoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of shingidoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*shingidoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*shingidoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
