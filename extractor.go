package shingidoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Used on meeting pages before minutes conversion so mention counting runs
// over body text rather than navigation chrome.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
