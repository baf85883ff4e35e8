package mock

import (
	"context"

	"github.com/fwojciec/datpedia"
)

var _ datpedia.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of datpedia.ReportService.
type ReportService struct {
	CreateRunFn     func(ctx context.Context, run *datpedia.Run) error
	CreateOutcomeFn func(ctx context.Context, outcome *datpedia.Outcome) error
	FinishRunFn     func(ctx context.Context, run *datpedia.Run) error
	FindRunByIDFn   func(ctx context.Context, id string) (*datpedia.Run, error)
	FindOutcomesFn  func(ctx context.Context, runID string) ([]*datpedia.Outcome, error)
}

func (s *ReportService) CreateRun(ctx context.Context, run *datpedia.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *ReportService) CreateOutcome(ctx context.Context, outcome *datpedia.Outcome) error {
	return s.CreateOutcomeFn(ctx, outcome)
}

func (s *ReportService) FinishRun(ctx context.Context, run *datpedia.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *ReportService) FindRunByID(ctx context.Context, id string) (*datpedia.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *ReportService) FindOutcomes(ctx context.Context, runID string) ([]*datpedia.Outcome, error) {
	return s.FindOutcomesFn(ctx, runID)
}
