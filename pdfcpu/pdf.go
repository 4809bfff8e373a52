// Package pdfcpu probes and extracts text from downloaded PDFs using the
// pdfcpu library. Extraction parses content-stream text operators directly;
// it is best effort and tuned for layout feature counting rather than
// faithful reading order.
package pdfcpu

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.PageProber = (*Prober)(nil)

// Prober reports PDF page counts.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// PageCount returns the page count of the PDF at path. Missing, encrypted
// or unparseable files report ok=false; callers treat unknown counts as a
// soft condition.
func (p *Prober) PageCount(path string) (int, bool) {
	n, err := api.PageCountFile(path)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

var _ shingidoc.TextExtractor = (*Extractor)(nil)

// Extractor extracts plain text from a page range of a PDF.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText extracts text from pages firstPage through lastPage,
// inclusive and 1-based. lastPage is clamped to the document length.
func (e *Extractor) ExtractText(path string, firstPage, lastPage int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", shingidoc.Errorf(shingidoc.ENOTFOUND, "open pdf: %v", err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", shingidoc.Errorf(shingidoc.EINTERNAL, "pdfcpu read: %v", err)
	}

	if firstPage < 1 {
		firstPage = 1
	}
	if lastPage > ctx.PageCount {
		lastPage = ctx.PageCount
	}

	var pages []string
	for pageNr := firstPage; pageNr <= lastPage; pageNr++ {
		if text := extractPageText(ctx, pageNr); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// parseContentStream pulls text out of PDF text-show operators. Newlines
// are preserved on line-move operators so downstream layout analysis sees
// the document's line structure.
func parseContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tj and TJ: show text.
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}

		// ': move to next line and show text.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}

		// Td/TD and T*: text positioning, treated as line breaks.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

// decodePDFString handles basic PDF string escape sequences, including
// octal escapes.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
