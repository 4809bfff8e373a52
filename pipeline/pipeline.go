// Package pipeline orchestrates a full run over a meeting page: link
// extraction, scoring, selection, download, deferred-pair resolution, and
// document analysis. Stages communicate through JSON artifacts in the run
// directory so any stage can be re-run or inspected after the fact.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/analyze"
	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/fs"
	"github.com/knakagawa/shingidoc/goquery"
	"github.com/knakagawa/shingidoc/pair"
	"github.com/knakagawa/shingidoc/pick"
	"github.com/knakagawa/shingidoc/score"
)

// Artifact filenames within a run directory.
const (
	LinksArtifact     = "pdf-links.json"
	SelectionArtifact = "material-selection.json"
	PipelineArtifact  = "document-pipeline.json"
)

// Pipeline coordinates the pipeline stages. All fields except Runs and
// Logger are required.
type Pipeline struct {
	Policy        *config.Policy
	Fetcher       shingidoc.Fetcher
	PageExtractor shingidoc.Extractor
	Converter     shingidoc.Converter
	Classifier    shingidoc.Classifier
	Downloader    shingidoc.Downloader
	Prober        shingidoc.PageProber
	TextExtractor shingidoc.TextExtractor

	// Runs, when set, records run history.
	Runs shingidoc.RunService

	Logger *slog.Logger
}

// Links is the link-extraction artifact.
type Links struct {
	RunID       string              `json:"run_id"`
	SourceURL   string              `json:"source_url"`
	GeneratedAt time.Time           `json:"generated_at"`
	LinkCount   int                 `json:"pdf_link_count"`
	Links       []shingidoc.RawLink `json:"pdf_links"`
}

// Selection is the selection-stage artifact.
type Selection struct {
	RunID       string    `json:"run_id"`
	SourceURL   string    `json:"source_url"`
	GeneratedAt time.Time `json:"generated_at"`
	*shingidoc.SelectionResult
}

// Analysis is the resolution and analysis artifact.
type Analysis struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	*shingidoc.ResolutionResult
	Results []*shingidoc.AnalysisResult `json:"analysis_results"`
}

// Summary is the outcome of a full end-to-end run.
type Summary struct {
	RunID     string
	RunDir    string
	Selection *Selection
	Analysis  *Analysis
}

func (p *Pipeline) log() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ExtractLinks fetches the meeting page and extracts its PDF links.
func (p *Pipeline) ExtractLinks(ctx context.Context, sourceURL string) ([]shingidoc.RawLink, error) {
	page, err := p.Fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	links, err := goquery.ExtractPDFLinks(string(page.Body), page.FinalURL)
	if err != nil {
		return nil, err
	}

	p.log().Info("pdf links extracted", "source_url", sourceURL, "count", len(links))
	return links, nil
}

// minutesMarkdown extracts the meeting page's main content as Markdown for
// material mention counting. Extraction failures degrade to an empty
// mention index rather than failing the run.
func (p *Pipeline) minutesMarkdown(body string) string {
	extracted, err := p.PageExtractor.Extract(body)
	if err != nil {
		p.log().Warn("page content extraction failed, mention bonuses disabled", "error", err)
		return ""
	}
	if extracted.ContentHTML == "" {
		return ""
	}

	md, err := p.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		p.log().Warn("markdown conversion failed, mention bonuses disabled", "error", err)
		return ""
	}
	return md
}

// SelectMaterials runs the scoring and selection stages over the meeting
// page and downloads the selected documents. The selection artifact is
// written into the run directory.
func (p *Pipeline) SelectMaterials(ctx context.Context, rd *fs.RunDir, sourceURL string) (*Selection, error) {
	page, err := p.Fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	rawLinks, err := goquery.ExtractPDFLinks(string(page.Body), page.FinalURL)
	if err != nil {
		return nil, err
	}
	links := score.Normalize(rawLinks)

	mentions := score.BuildMentionIndex(p.minutesMarkdown(string(page.Body)))

	engine := score.NewEngine(p.Policy, p.Classifier)
	candidates := engine.ScoreAll(ctx, links, mentions)
	score.Adjust(p.Policy, candidates)

	// Pair matching and selection both walk candidates in rank order, so
	// the higher-scored of two contending summaries claims a shared full.
	score.Sort(candidates)

	matcher := pair.NewMatcher(p.Policy)
	groups, forced := matcher.Match(candidates)

	selected := pick.Select(p.Policy, candidates, forced)
	pair.Annotate(selected, groups)

	downloadDir, err := rd.Subdir("downloads")
	if err != nil {
		return nil, err
	}
	downloads := p.Downloader.DownloadAll(ctx, downloadDir, selected)

	sel := &Selection{
		RunID:       rd.ID,
		SourceURL:   sourceURL,
		GeneratedAt: time.Now().UTC(),
		SelectionResult: &shingidoc.SelectionResult{
			AllCandidates: candidates,
			SelectionRule: pick.Rule(p.Policy),
			Selected:      selected,
			Deferred:      groups,
			Downloads:     downloads,
		},
	}

	if err := fs.WriteJSON(rd.Path(SelectionArtifact), sel); err != nil {
		return nil, err
	}

	p.log().Info("materials selected",
		"run_id", rd.ID,
		"candidates", len(candidates),
		"selected", len(selected),
		"deferred", len(groups),
	)
	return sel, nil
}

// ResolveAndAnalyze resolves deferred pairs against probed page counts,
// merges the final selection, and analyzes every final document. The
// analysis artifact is written into the run directory.
func (p *Pipeline) ResolveAndAnalyze(ctx context.Context, rd *fs.RunDir, sel *Selection) (*Analysis, error) {
	byURL := make(map[string]*shingidoc.DownloadRecord, len(sel.Downloads))
	for i := range sel.Downloads {
		byURL[sel.Downloads[i].URL] = &sel.Downloads[i]
	}

	analyzer := &analyze.Pipeline{
		Prober:    p.Prober,
		Extractor: p.TextExtractor,
		Workers:   p.Policy.AnalysisWorkers,
		PageLimit: p.Policy.AnalysisPageLimit,
	}

	counts := analyzer.ProbePageCounts(targets(sel.Selected, byURL))

	resolver := pair.NewResolver(p.Policy)
	resolved := resolver.Resolve(sel.Deferred, counts)

	final := pick.Merge(sel.Selected, resolved)

	sampleDir, err := rd.Subdir("samples")
	if err != nil {
		return nil, err
	}
	results := analyzer.AnalyzeAll(sampleDir, targets(final, byURL))

	analysis := &Analysis{
		RunID:       rd.ID,
		GeneratedAt: time.Now().UTC(),
		ResolutionResult: &shingidoc.ResolutionResult{
			ProbePageCounts: counts,
			Resolved:        resolved,
			FinalSelected:   final,
		},
		Results: results,
	}

	if err := fs.WriteJSON(rd.Path(PipelineArtifact), analysis); err != nil {
		return nil, err
	}

	p.log().Info("documents analyzed",
		"run_id", rd.ID,
		"resolved", len(resolved),
		"final", len(final),
	)
	return analysis, nil
}

// Run executes the full pipeline end to end and records run history when a
// RunService is configured.
func (p *Pipeline) Run(ctx context.Context, root, sourceURL string) (*Summary, error) {
	rd, err := fs.NewRunDir(root, "")
	if err != nil {
		return nil, err
	}

	sel, err := p.SelectMaterials(ctx, rd, sourceURL)
	if err != nil {
		return nil, err
	}

	if p.Runs != nil {
		run := &shingidoc.Run{
			ID:             rd.ID,
			SourceURL:      sourceURL,
			RunDir:         rd.Dir(),
			CandidateCount: len(sel.AllCandidates),
			SelectedCount:  len(sel.Selected),
			DeferredCount:  len(sel.Deferred),
		}
		if err := p.Runs.CreateRun(ctx, run); err != nil {
			p.log().Warn("run history record failed", "run_id", rd.ID, "error", err)
		}
	}

	analysis, err := p.ResolveAndAnalyze(ctx, rd, sel)
	if err != nil {
		return nil, err
	}

	if p.Runs != nil {
		finalCount := len(analysis.FinalSelected)
		if _, err := p.Runs.UpdateRun(ctx, rd.ID, shingidoc.RunUpdate{FinalCount: &finalCount}); err != nil {
			p.log().Warn("run history update failed", "run_id", rd.ID, "error", err)
		}
	}

	return &Summary{
		RunID:     rd.ID,
		RunDir:    rd.Dir(),
		Selection: sel,
		Analysis:  analysis,
	}, nil
}

// targets pairs candidates with their download records. Index follows
// position in the candidate list, matching the download save names.
func targets(candidates []*shingidoc.Candidate, byURL map[string]*shingidoc.DownloadRecord) []analyze.Target {
	out := make([]analyze.Target, 0, len(candidates))
	for i, c := range candidates {
		out = append(out, analyze.Target{
			Candidate: c,
			Download:  byURL[c.URL],
			Index:     i + 1,
		})
	}
	return out
}
