package pdfcpu_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/pdfcpu"
)

func TestProber_PageCount(t *testing.T) {
	t.Parallel()

	t.Run("valid pdf", func(t *testing.T) {
		t.Parallel()

		path := writeTestPDF(t, "page count probe")
		p := pdfcpu.NewProber()

		n, ok := p.PageCount(path)

		require.True(t, ok)
		assert.Equal(t, 1, n)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		p := pdfcpu.NewProber()
		_, ok := p.PageCount(filepath.Join(t.TempDir(), "missing.pdf"))

		assert.False(t, ok)
	})

	t.Run("not a pdf", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

		p := pdfcpu.NewProber()
		_, ok := p.PageCount(path)

		assert.False(t, ok)
	})
}

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts page text", func(t *testing.T) {
		t.Parallel()

		path := writeTestPDF(t, "Committee material overview")
		e := pdfcpu.NewExtractor()

		text, err := e.ExtractText(path, 1, 5)

		require.NoError(t, err)
		assert.Contains(t, text, "Committee material overview")
	})

	t.Run("missing file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		e := pdfcpu.NewExtractor()
		_, err := e.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"), 1, 5)

		require.Error(t, err)
		assert.Equal(t, shingidoc.ENOTFOUND, shingidoc.ErrorCode(err))
	})

	t.Run("corrupt file returns EINTERNAL", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 truncated"), 0o644))

		e := pdfcpu.NewExtractor()
		_, err := e.ExtractText(path, 1, 5)

		require.Error(t, err)
		assert.Equal(t, shingidoc.EINTERNAL, shingidoc.ErrorCode(err))
	})
}

// writeTestPDF builds a minimal one-page PDF with a single text operator.
func writeTestPDF(t *testing.T, text string) string {
	t.Helper()

	escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}
