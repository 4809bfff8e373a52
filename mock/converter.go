package mock

import "github.com/knakagawa/shingidoc"

var _ shingidoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of shingidoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
