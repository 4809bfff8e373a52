package main

import (
	"context"
	"io"

	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/pipeline"
	"github.com/knakagawa/shingidoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Runs     shingidoc.RunService
	Pipeline *pipeline.Pipeline
	RunsRoot string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `help:"Path to a YAML selection policy file" type:"path"`
	RunsRoot string `name:"runs-root" default:"runs" help:"Directory holding per-run output directories"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Links   LinksCmd   `cmd:"" help:"Extract PDF links from a meeting page"`
	Pick    PickCmd    `cmd:"" help:"Score, select, and download meeting materials"`
	Analyze AnalyzeCmd `cmd:"" help:"Resolve deferred pairs and analyze documents of an existing run"`
	Run     RunCmd     `cmd:"" help:"Run the full pipeline end to end"`
	Runs    RunsCmd    `cmd:"" help:"List recorded runs"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL string `arg:"" help:"Meeting page URL"`
	Out string `short:"o" help:"Write the link artifact to this directory as a new run"`
}

// PickCmd is the "pick" subcommand.
type PickCmd struct {
	URL string `arg:"" help:"Meeting page URL"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	RunID string `arg:"" help:"Run ID of an existing selection run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL string `arg:"" help:"Meeting page URL"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `short:"s" help:"Filter runs by source URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to list"`
}
