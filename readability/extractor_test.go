package readability_test

import (
	"strings"
	"testing"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/mock"
	"github.com/knakagawa/shingidoc/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, shingidoc.EINVALID, shingidoc.ErrorCode(err))
}

func TestExtractor_ExtractsMeetingPageContent(t *testing.T) {
	t.Parallel()

	// Readability needs a substantial content block to pick a candidate.
	body := strings.Repeat("<p>本日の検討会では、資料1に基づき検討状況を確認した。委員からは施策の方向性について意見が出された。</p>\n", 20)

	html := `<!DOCTYPE html>
<html>
<head><title>第3回 検討会</title></head>
<body>
<div id="main">
` + body + `
</div>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "第3回 検討会", result.Title)
	assert.Contains(t, result.ContentHTML, "資料1に基づき検討状況を確認した")
}

func TestFallback_PrimaryResultWins(t *testing.T) {
	t.Parallel()

	primary := &mock.Extractor{
		ExtractFn: func(_ string) (*shingidoc.ExtractResult, error) {
			return &shingidoc.ExtractResult{Title: "会議", ContentHTML: "<p>本文</p>"}, nil
		},
	}

	f := readability.NewFallback(primary)
	result, err := f.Extract("<html><body>irrelevant</body></html>")

	require.NoError(t, err)
	assert.Equal(t, "会議", result.Title)
	assert.Equal(t, "<p>本文</p>", result.ContentHTML)
}

func TestFallback_UsedWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := &mock.Extractor{
		ExtractFn: func(_ string) (*shingidoc.ExtractResult, error) {
			return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "content extraction failed")
		},
	}

	body := strings.Repeat("<p>本日の検討会では、資料1に基づき検討状況を確認した。委員からは施策の方向性について意見が出された。</p>\n", 20)
	html := `<html><head><title>第3回 検討会</title></head><body><div id="main">` + body + `</div></body></html>`

	f := readability.NewFallback(primary)
	result, err := f.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "資料1に基づき検討状況を確認した")
}

func TestFallback_UsedWhenPrimaryComesBackEmpty(t *testing.T) {
	t.Parallel()

	primary := &mock.Extractor{
		ExtractFn: func(_ string) (*shingidoc.ExtractResult, error) {
			return &shingidoc.ExtractResult{Title: "第3回 検討会"}, nil
		},
	}

	body := strings.Repeat("<p>本日の検討会では、資料1に基づき検討状況を確認した。委員からは施策の方向性について意見が出された。</p>\n", 20)
	html := `<html><head><title></title></head><body><div id="main">` + body + `</div></body></html>`

	f := readability.NewFallback(primary)
	result, err := f.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "資料1に基づき検討状況を確認した")
	// The primary keeps naming rights when the fallback finds no title.
	assert.Equal(t, "第3回 検討会", result.Title)
}

func TestFallback_PrimaryErrorSurvivesDoubleFailure(t *testing.T) {
	t.Parallel()

	primary := &mock.Extractor{
		ExtractFn: func(_ string) (*shingidoc.ExtractResult, error) {
			return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "content extraction failed")
		},
	}

	f := readability.NewFallback(primary)
	_, err := f.Extract("")

	require.Error(t, err)
	assert.Equal(t, "content extraction failed", shingidoc.ErrorMessage(err))
}
