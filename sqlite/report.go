package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/datpedia"
)

// Compile-time interface verification.
var _ datpedia.ReportService = (*ReportService)(nil)

// ReportService implements datpedia.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateRun records the start of a run. StartedAt is set if zero.
func (s *ReportService) CreateRun(ctx context.Context, run *datpedia.Run) error {
	if run.ID == "" {
		return datpedia.Errorf(datpedia.EINVALID, "run ID required")
	}
	if err := datpedia.ValidateCorpus(run.Corpus); err != nil {
		return err
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, corpus, total, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Corpus, run.Total, run.StartedAt.Format(time.RFC3339))

	return err
}

// CreateOutcome records the outcome of one document.
func (s *ReportService) CreateOutcome(ctx context.Context, o *datpedia.Outcome) error {
	if o.RunID == "" {
		return datpedia.Errorf(datpedia.EINVALID, "outcome run ID required")
	}
	if o.Slug == "" {
		return datpedia.Errorf(datpedia.EINVALID, "outcome slug required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (run_id, slug, status, content_hash, bytes, diagnostics, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.RunID, o.Slug, string(o.Status), o.ContentHash, o.Bytes, o.Diagnostics, o.Error)

	return err
}

// FinishRun stores the final counts of a run. FinishedAt is set if zero.
func (s *ReportService) FinishRun(ctx context.Context, run *datpedia.Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET total = ?, written = ?, skipped = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`, run.Total, run.Written, run.Skipped, run.Failed, run.FinishedAt.Format(time.RFC3339), run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return datpedia.Errorf(datpedia.ENOTFOUND, "run not found")
	}

	return nil
}

// FindRunByID retrieves a run by ID.
func (s *ReportService) FindRunByID(ctx context.Context, id string) (*datpedia.Run, error) {
	var run datpedia.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, corpus, total, written, skipped, failed, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Corpus, &run.Total, &run.Written, &run.Skipped, &run.Failed,
		&startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, datpedia.Errorf(datpedia.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &run, nil
}

// FindOutcomes returns the outcomes of a run in insertion order.
func (s *ReportService) FindOutcomes(ctx context.Context, runID string) ([]*datpedia.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, slug, status, content_hash, bytes, diagnostics, error
		FROM outcomes
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []*datpedia.Outcome
	for rows.Next() {
		var o datpedia.Outcome
		var status string

		if err := rows.Scan(&o.RunID, &o.Slug, &status, &o.ContentHash, &o.Bytes, &o.Diagnostics, &o.Error); err != nil {
			return nil, err
		}
		o.Status = datpedia.OutcomeStatus(status)

		outcomes = append(outcomes, &o)
	}

	return outcomes, rows.Err()
}
