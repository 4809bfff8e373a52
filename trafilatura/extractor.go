// Package trafilatura implements main-content extraction from meeting-page
// HTML using the go-trafilatura library. Boilerplate removal matters here:
// ministry sites carry heavy navigation chrome that would pollute minutes
// mention counting.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/knakagawa/shingidoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ shingidoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main content.
func (e *Extractor) Extract(rawHTML string) (*shingidoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, shingidoc.Errorf(shingidoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "content extraction failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "render content: %v", err)
		}
	}

	return &shingidoc.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
