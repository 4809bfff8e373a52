package analyze_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/analyze"
	"github.com/knakagawa/shingidoc/mock"
)

func TestPipeline_ProbePageCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	saved := filepath.Join(dir, "selected-01-doc.pdf")
	require.NoError(t, os.WriteFile(saved, []byte("%PDF-1.7"), 0o644))

	prober := &mock.PageProber{
		PageCountFn: func(path string) (int, bool) {
			if path == saved {
				return 15, true
			}
			return 0, false
		},
	}
	p := &analyze.Pipeline{Prober: prober}

	targets := []analyze.Target{
		{
			Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/a.pdf"},
			Download:  &shingidoc.DownloadRecord{Downloaded: true, SavedPath: saved},
			Index:     1,
		},
		{
			Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/b.pdf"},
			Download:  &shingidoc.DownloadRecord{Downloaded: false},
			Index:     2,
		},
		{
			Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/c.pdf"},
			Index:     3,
		},
	}

	counts := p.ProbePageCounts(targets)

	require.Len(t, counts, 3)
	require.NotNil(t, counts["https://example.go.jp/a.pdf"])
	assert.Equal(t, 15, *counts["https://example.go.jp/a.pdf"])
	assert.Nil(t, counts["https://example.go.jp/b.pdf"], "failed download has no page count")
	assert.Nil(t, counts["https://example.go.jp/c.pdf"], "missing download has no page count")
}

func TestPipeline_AnalyzeAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sampleDir := t.TempDir()

	prose := "本報告書は、政策の実施状況と今後の課題を整理してまとめたものです。\n調査によれば、各府省の施策はいずれも着実に進展しています。\n\n今後は、関係省庁と緊密に連携して取組を一層強化します。\n"

	var targets []analyze.Target
	for i := 1; i <= 3; i++ {
		saved := filepath.Join(dir, fmt.Sprintf("selected-%02d-doc.pdf", i))
		require.NoError(t, os.WriteFile(saved, []byte("%PDF-1.7"), 0o644))
		targets = append(targets, analyze.Target{
			Candidate: &shingidoc.Candidate{
				URL:  fmt.Sprintf("https://example.go.jp/%d.pdf", i),
				Text: fmt.Sprintf("資料%d", i),
			},
			Download: &shingidoc.DownloadRecord{Downloaded: true, SavedPath: saved},
			Index:    i,
		})
	}

	p := &analyze.Pipeline{
		Prober: &mock.PageProber{
			PageCountFn: func(path string) (int, bool) { return 12, true },
		},
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(path string, firstPage, lastPage int) (string, error) {
				assert.Equal(t, 1, firstPage)
				assert.Equal(t, 5, lastPage)
				return prose, nil
			},
		},
		Workers:   2,
		PageLimit: 5,
	}

	results := p.AnalyzeAll(sampleDir, targets)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.True(t, r.Analyzed)
		assert.Empty(t, r.Error)
		assert.Equal(t, targets[i].Download.SavedPath, r.SavedPath, "sorted by saved path")
		require.NotNil(t, r.PageCount)
		assert.Equal(t, 12, *r.PageCount)
		assert.Equal(t, shingidoc.TypeWordLike, r.DocumentType)
		assert.Equal(t, shingidoc.StrategyLongform, r.Strategy)
		require.NotNil(t, r.Features)

		require.FileExists(t, r.FirstPagesPath)
		b, err := os.ReadFile(r.FirstPagesPath)
		require.NoError(t, err)
		assert.Equal(t, prose, string(b))
	}
	assert.Equal(t, filepath.Join(sampleDir, "firstpages-01.txt"), results[0].FirstPagesPath)
}

func TestPipeline_AnalyzeAll_MissingDownload(t *testing.T) {
	t.Parallel()

	p := &analyze.Pipeline{
		Prober:    &mock.PageProber{PageCountFn: func(string) (int, bool) { return 0, false }},
		Extractor: &mock.TextExtractor{},
		PageLimit: 5,
	}

	targets := []analyze.Target{
		{
			Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/a.pdf", Text: "資料1"},
			Index:     1,
		},
		{
			Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/b.pdf", Text: "資料2"},
			Download:  &shingidoc.DownloadRecord{Downloaded: true, SavedPath: "/nonexistent/b.pdf"},
			Index:     2,
		},
	}

	results := p.AnalyzeAll(t.TempDir(), targets)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Analyzed)
		assert.Equal(t, "pdf file not available for analysis", r.Error)
	}
}

func TestPipeline_AnalyzeAll_ExtractionFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	saved := filepath.Join(dir, "selected-01-doc.pdf")
	require.NoError(t, os.WriteFile(saved, []byte("%PDF-1.7"), 0o644))

	p := &analyze.Pipeline{
		Prober: &mock.PageProber{PageCountFn: func(string) (int, bool) { return 30, true }},
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(string, int, int) (string, error) {
				return "", fmt.Errorf("encrypted document")
			},
		},
		PageLimit: 5,
	}

	targets := []analyze.Target{{
		Candidate: &shingidoc.Candidate{URL: "https://example.go.jp/a.pdf", Text: "資料1"},
		Download:  &shingidoc.DownloadRecord{Downloaded: true, SavedPath: saved},
		Index:     1,
	}}

	results := p.AnalyzeAll(t.TempDir(), targets)

	require.Len(t, results, 1)
	r := results[0]
	assert.False(t, r.Analyzed)
	assert.Equal(t, "text extraction failed: encrypted document", r.Error)
	require.NotNil(t, r.PageCount, "page count survives an extraction failure")
	assert.Equal(t, 30, *r.PageCount)
}
