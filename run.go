package shingidoc

import (
	"context"
	"time"
)

// Run records one pipeline execution over a meeting page.
type Run struct {
	ID             string    `json:"id"`
	SourceURL      string    `json:"sourceUrl"`
	RunDir         string    `json:"runDir"`
	CandidateCount int       `json:"candidateCount"`
	SelectedCount  int       `json:"selectedCount"`
	DeferredCount  int       `json:"deferredCount"`
	FinalCount     int       `json:"finalCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "run ID required")
	}
	if r.RunDir == "" {
		return Errorf(EINVALID, "run directory required")
	}
	return nil
}

// RunUpdate represents fields that can be updated on a run after later
// pipeline stages complete.
type RunUpdate struct {
	SelectedCount *int `json:"selectedCount"`
	DeferredCount *int `json:"deferredCount"`
	FinalCount    *int `json:"finalCount"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService manages the persistent run history.
type RunService interface {
	// CreateRun records a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// UpdateRun updates stage counts on an existing run.
	// Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)
}
