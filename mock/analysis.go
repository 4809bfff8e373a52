package mock

import "github.com/knakagawa/shingidoc"

var _ shingidoc.PageProber = (*PageProber)(nil)

// PageProber is a mock implementation of shingidoc.PageProber.
type PageProber struct {
	PageCountFn func(path string) (int, bool)
}

func (p *PageProber) PageCount(path string) (int, bool) {
	return p.PageCountFn(path)
}

var _ shingidoc.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of shingidoc.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(path string, firstPage, lastPage int) (string, error)
}

func (e *TextExtractor) ExtractText(path string, firstPage, lastPage int) (string, error) {
	return e.ExtractTextFn(path, firstPage, lastPage)
}
