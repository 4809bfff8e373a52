package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/knakagawa/shingidoc"
)

var _ shingidoc.RunService = (*RunService)(nil)

// RunService implements shingidoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a new run. The caller assigns the run ID; it doubles as
// the artifact directory name.
func (s *RunService) CreateRun(ctx context.Context, run *shingidoc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, run_dir, candidate_count, selected_count, deferred_count, final_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceURL, run.RunDir, run.CandidateCount, run.SelectedCount, run.DeferredCount, run.FinalCount,
		run.CreatedAt.Format(time.RFC3339), run.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return shingidoc.Errorf(shingidoc.ECONFLICT, "run already exists: %s", run.ID)
		}
		return err
	}

	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*shingidoc.Run, error) {
	var run shingidoc.Run
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, run_dir, candidate_count, selected_count, deferred_count, final_count, created_at, updated_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SourceURL, &run.RunDir, &run.CandidateCount, &run.SelectedCount,
		&run.DeferredCount, &run.FinalCount, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, shingidoc.Errorf(shingidoc.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if run.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter shingidoc.RunFilter) ([]*shingidoc.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_url, run_dir, candidate_count, selected_count, deferred_count, final_count, created_at, updated_at FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*shingidoc.Run
	for rows.Next() {
		var run shingidoc.Run
		var createdAt, updatedAt string

		if err := rows.Scan(&run.ID, &run.SourceURL, &run.RunDir, &run.CandidateCount, &run.SelectedCount,
			&run.DeferredCount, &run.FinalCount, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if run.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// UpdateRun updates stage counts on an existing run.
func (s *RunService) UpdateRun(ctx context.Context, id string, upd shingidoc.RunUpdate) (*shingidoc.Run, error) {
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.SelectedCount != nil {
		run.SelectedCount = *upd.SelectedCount
	}
	if upd.DeferredCount != nil {
		run.DeferredCount = *upd.DeferredCount
	}
	if upd.FinalCount != nil {
		run.FinalCount = *upd.FinalCount
	}

	run.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET selected_count = ?, deferred_count = ?, final_count = ?, updated_at = ?
		WHERE id = ?
	`, run.SelectedCount, run.DeferredCount, run.FinalCount, run.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
