package mock

import (
	"context"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of shingidoc.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *shingidoc.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*shingidoc.Run, error)
	FindRunsFn    func(ctx context.Context, filter shingidoc.RunFilter) ([]*shingidoc.Run, error)
	UpdateRunFn   func(ctx context.Context, id string, upd shingidoc.RunUpdate) (*shingidoc.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *shingidoc.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*shingidoc.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter shingidoc.RunFilter) ([]*shingidoc.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) UpdateRun(ctx context.Context, id string, upd shingidoc.RunUpdate) (*shingidoc.Run, error) {
	return s.UpdateRunFn(ctx, id, upd)
}
