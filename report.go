package datpedia

import (
	"context"
	"time"
)

// OutcomeStatus is the result of processing one document.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeWritten OutcomeStatus = "written"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Run represents one batch over a corpus.
type Run struct {
	ID         string    `json:"id"`
	Corpus     string    `json:"corpus"`
	Total      int       `json:"total"`
	Written    int       `json:"written"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Outcome records what happened to one document during a run.
type Outcome struct {
	RunID       string        `json:"runId"`
	Slug        string        `json:"slug"`
	Status      OutcomeStatus `json:"status"`
	ContentHash string        `json:"contentHash"`
	Bytes       int           `json:"bytes"`
	Diagnostics int           `json:"diagnostics"`
	Error       string        `json:"error"`
}

// ReportService records build runs and per-document outcomes.
type ReportService interface {
	// CreateRun records the start of a run.
	CreateRun(ctx context.Context, run *Run) error

	// CreateOutcome records the outcome of one document.
	CreateOutcome(ctx context.Context, outcome *Outcome) error

	// FinishRun records the final counts of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run. Returns ENOTFOUND if it does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindOutcomes returns the outcomes of a run in insertion order.
	FindOutcomes(ctx context.Context, runID string) ([]*Outcome, error)
}
