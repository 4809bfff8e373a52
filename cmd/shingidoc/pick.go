package main

import (
	"fmt"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/fs"
	"github.com/knakagawa/shingidoc/pipeline"
)

// Run executes the pick command.
func (c *PickCmd) Run(deps *Dependencies) error {
	rd, err := fs.NewRunDir(deps.RunsRoot, "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	sel, err := deps.Pipeline.SelectMaterials(deps.Ctx, rd, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	if deps.Runs != nil {
		run := &shingidoc.Run{
			ID:             rd.ID,
			SourceURL:      c.URL,
			RunDir:         rd.Dir(),
			CandidateCount: len(sel.AllCandidates),
			SelectedCount:  len(sel.Selected),
			DeferredCount:  len(sel.Deferred),
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: run history record failed: %s\n", shingidoc.ErrorMessage(err))
		}
	}

	printSelection(deps, rd, sel)
	return nil
}

func printSelection(deps *Dependencies, rd *fs.RunDir, sel *pipeline.Selection) {
	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", rd.ID, rd.Dir())
	fmt.Fprintf(deps.Stdout, "Candidates: %d  Selected: %d  Deferred groups: %d\n",
		len(sel.AllCandidates), len(sel.Selected), len(sel.Deferred))

	for _, cand := range sel.Selected {
		marker := " "
		if cand.DecisionPending {
			marker = "?"
		}
		fmt.Fprintf(deps.Stdout, "  %s [%2d] %-17s  %s\n",
			marker, cand.PriorityScore, cand.Category, cand.Text)
	}

	for _, d := range sel.Downloads {
		if !d.Downloaded {
			fmt.Fprintf(deps.Stderr, "  download failed: %s (%s)\n", d.URL, d.Error)
		}
	}

	if len(sel.Deferred) > 0 {
		fmt.Fprintf(deps.Stdout, "Run 'shingidoc analyze %s' to resolve deferred pairs.\n", rd.ID)
	}
}
