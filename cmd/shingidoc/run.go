package main

import (
	"fmt"

	"github.com/knakagawa/shingidoc"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Pipeline.Run(deps.Ctx, deps.RunsRoot, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", summary.RunID, summary.RunDir)
	fmt.Fprintf(deps.Stdout, "Candidates: %d  Selected: %d  Deferred groups: %d\n",
		len(summary.Selection.AllCandidates),
		len(summary.Selection.Selected),
		len(summary.Selection.Deferred),
	)

	printAnalysis(deps, summary.Analysis)
	return nil
}
