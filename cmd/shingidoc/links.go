package main

import (
	"fmt"
	"time"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/fs"
	"github.com/knakagawa/shingidoc/pipeline"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	links, err := deps.Pipeline.ExtractLinks(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No PDF links found on the page.")
		return nil
	}

	for _, l := range links {
		fmt.Fprintf(deps.Stdout, "%-17s  %s  %s\n", l.EstimatedCategory, l.Text, l.URL)
	}

	// Persist the artifact only when asked to; link extraction alone is
	// usually exploratory.
	if c.Out != "" {
		rd, err := fs.NewRunDir(c.Out, "")
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
			return err
		}

		artifact := &pipeline.Links{
			RunID:       rd.ID,
			SourceURL:   c.URL,
			GeneratedAt: time.Now().UTC(),
			LinkCount:   len(links),
			Links:       links,
		}
		if err := fs.WriteJSON(rd.Path(pipeline.LinksArtifact), artifact); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", shingidoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nWrote %s\n", rd.Path(pipeline.LinksArtifact))
	}

	return nil
}
