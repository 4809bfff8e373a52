package main

import (
	"fmt"

	"github.com/knakagawa/shingidoc"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := shingidoc.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'shingidoc run' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  cand=%d sel=%d def=%d final=%d  %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.CandidateCount,
			r.SelectedCount,
			r.DeferredCount,
			r.FinalCount,
			r.SourceURL,
		)
	}

	return nil
}
