package main

import (
	"fmt"
	"path/filepath"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/fs"
	"github.com/knakagawa/shingidoc/pipeline"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	root := deps.RunsRoot
	if run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID); err == nil {
		root = filepath.Dir(run.RunDir)
	}

	rd, err := fs.NewRunDir(root, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	var sel pipeline.Selection
	if err := fs.ReadJSON(rd.Path(pipeline.SelectionArtifact), &sel); err != nil {
		if shingidoc.ErrorCode(err) == shingidoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "No selection artifact for run %q. Run 'shingidoc pick' first.\n", c.RunID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		}
		return err
	}

	analysis, err := deps.Pipeline.ResolveAndAnalyze(deps.Ctx, rd, &sel)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	if deps.Runs != nil {
		finalCount := len(analysis.FinalSelected)
		if _, err := deps.Runs.UpdateRun(deps.Ctx, rd.ID, shingidoc.RunUpdate{FinalCount: &finalCount}); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: run history update failed: %s\n", shingidoc.ErrorMessage(err))
		}
	}

	printAnalysis(deps, analysis)
	return nil
}

func printAnalysis(deps *Dependencies, analysis *pipeline.Analysis) {
	for _, r := range analysis.Resolved {
		fmt.Fprintf(deps.Stdout, "Resolved %s: chose %s %q (%s)\n",
			r.GroupID, r.ChosenRole, r.ChosenText, r.Reason)
	}

	fmt.Fprintf(deps.Stdout, "Final selection: %d documents\n", len(analysis.FinalSelected))

	for _, res := range analysis.Results {
		if !res.Analyzed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", res.Text, res.Error)
			continue
		}
		pages := "?"
		if res.PageCount != nil {
			pages = fmt.Sprintf("%d", *res.PageCount)
		}
		fmt.Fprintf(deps.Stdout, "  %-10s  %3s pages  %-16s  %s\n",
			res.DocumentType, pages, res.Strategy, res.Text)
	}
}
