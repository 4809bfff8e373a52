package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/knakagawa/shingidoc"
)

// Target is one finally selected document handed to the pipeline: the
// candidate plus its download record, if any.
type Target struct {
	Candidate *shingidoc.Candidate
	Download  *shingidoc.DownloadRecord
	Index     int // 1-based position in the final selection
}

// Pipeline analyzes selected documents concurrently. Each task reads its
// own input and produces its own result; a failing task yields an error
// record without affecting siblings, and results are sorted by saved path
// after collection so output order is independent of completion order.
type Pipeline struct {
	Prober    shingidoc.PageProber
	Extractor shingidoc.TextExtractor

	// Workers bounds the pool; values below 1 run a single worker.
	Workers int

	// PageLimit is how many leading pages are sampled per document.
	PageLimit int
}

// ProbePageCounts is the cheap first pass: page counts only, keyed by URL,
// nil for unknown. Used exclusively for deferred-pair resolution.
func (p *Pipeline) ProbePageCounts(targets []Target) map[string]*int {
	counts := make(map[string]*int, len(targets))
	for _, t := range targets {
		if t.Candidate == nil || t.Candidate.URL == "" {
			continue
		}
		counts[t.Candidate.URL] = p.probe(t)
	}
	return counts
}

func (p *Pipeline) probe(t Target) *int {
	if t.Download == nil || !t.Download.Downloaded || t.Download.SavedPath == "" {
		return nil
	}
	n, ok := p.Prober.PageCount(t.Download.SavedPath)
	if !ok {
		return nil
	}
	return &n
}

// AnalyzeAll runs the full analysis over every target using a bounded
// worker pool, writing each document's first-pages text sample under
// sampleDir. One result is returned per target regardless of individual
// failures.
func (p *Pipeline) AnalyzeAll(sampleDir string, targets []Target) []*shingidoc.AnalysisResult {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(targets) && len(targets) > 0 {
		workers = len(targets)
	}

	workCh := make(chan Target)
	resultCh := make(chan *shingidoc.AnalysisResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range workCh {
				resultCh <- p.analyzeOne(sampleDir, t)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()
	go func() {
		for _, t := range targets {
			workCh <- t
		}
		close(workCh)
	}()

	results := make([]*shingidoc.AnalysisResult, 0, len(targets))
	for r := range resultCh {
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].SavedPath < results[j].SavedPath
	})
	return results
}

func (p *Pipeline) analyzeOne(sampleDir string, t Target) *shingidoc.AnalysisResult {
	result := &shingidoc.AnalysisResult{
		URL:  t.Candidate.URL,
		Text: t.Candidate.Text,
	}
	if t.Download != nil {
		result.SavedPath = t.Download.SavedPath
	}

	if t.Download == nil || !t.Download.Downloaded || !fileExists(t.Download.SavedPath) {
		result.Error = "pdf file not available for analysis"
		return result
	}

	if n, ok := p.Prober.PageCount(t.Download.SavedPath); ok {
		result.PageCount = &n
	}

	sample, err := p.Extractor.ExtractText(t.Download.SavedPath, 1, p.PageLimit)
	if err != nil {
		result.Error = fmt.Sprintf("text extraction failed: %v", err)
		return result
	}

	samplePath := filepath.Join(sampleDir, fmt.Sprintf("firstpages-%02d.txt", t.Index))
	if err := os.WriteFile(samplePath, []byte(sample), 0o644); err != nil {
		result.Error = fmt.Sprintf("write text sample: %v", err)
		return result
	}
	result.FirstPagesPath = samplePath

	features := ExtractFeatures(sample)
	docType, reason := ClassifyType(t.Candidate.Text, sample, features)

	result.Analyzed = true
	result.Features = features
	result.DocumentType = docType
	result.Reason = reason
	result.Strategy = StrategyFor(docType)
	return result
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
