// Package batch applies the normalizer to every article of a corpus.
// Articles are processed concurrently; progress and diagnostics are
// delivered from a single goroutine so output lines never interleave.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/fwojciec/datpedia"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Orchestrator reads, normalizes and writes the articles of a corpus.
type Orchestrator struct {
	Source      datpedia.DocumentSource
	Normalizer  datpedia.Normalizer
	Writer      datpedia.DocumentWriter
	Reports     datpedia.ReportService // optional
	Concurrency int
}

// Result holds the outcome of a batch.
type Result struct {
	RunID       string
	Total       int
	Written     int
	Skipped     int
	Failed      int
	Diagnostics int
	Bytes       int

	// Slugs lists the written articles in input order.
	Slugs []string
}

// OK reports whether no article failed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type        ProgressType
	Completed   int
	Total       int
	Slug        string
	Diagnostics []datpedia.Diagnostic
	Error       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressWritten
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// docResult holds the outcome of processing a single article.
type docResult struct {
	position    int
	slug        string
	status      datpedia.OutcomeStatus
	hash        string
	bytes       int
	diagnostics []datpedia.Diagnostic
	err         error
	fatal       bool
}

// Run processes the articles of corpus. If slugs is nil every article in
// the source tree is processed.
//
// Missing articles are skipped and failing articles are counted in the
// result; neither stops the batch. A write failure cancels the remaining
// articles and is returned as an error together with the partial result.
func (o *Orchestrator) Run(ctx context.Context, corpus string, slugs []string, progress ProgressFunc) (*Result, error) {
	if err := datpedia.ValidateCorpus(corpus); err != nil {
		return nil, err
	}

	if slugs == nil {
		var err error
		slugs, err = o.Source.ListDocuments(ctx, corpus)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
	}

	concurrency := o.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	total := len(slugs)
	run := &datpedia.Run{
		ID:        uuid.New().String(),
		Corpus:    corpus,
		Total:     total,
		StartedAt: time.Now().UTC(),
	}
	if o.Reports != nil {
		if err := o.Reports.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create run report: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultCh := make(chan docResult, concurrency)

	// Start workers. A worker returns an error only for write failures,
	// which cancels gctx and stops the dispatch loop.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var groupErr error
	go func() {
		for i, slug := range slugs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				result := o.process(gctx, i, corpus, slug)
				resultCh <- result
				if result.fatal {
					return result.err
				}
				return nil
			})
		}
		groupErr = g.Wait()
		close(resultCh)
	}()

	// Collect results; progress and reports are serialized here.
	results := make([]docResult, total)
	done := make([]bool, total)
	res := &Result{RunID: run.ID, Total: total}
	var reportErr error
	completed := 0

	for result := range resultCh {
		completed++
		results[result.position] = result
		done[result.position] = true

		event := ProgressEvent{
			Completed:   completed,
			Total:       total,
			Slug:        result.slug,
			Diagnostics: result.diagnostics,
			Error:       result.err,
		}
		res.Diagnostics += len(result.diagnostics)

		switch result.status {
		case datpedia.OutcomeWritten:
			res.Written++
			res.Bytes += result.bytes
			event.Type = ProgressWritten
		case datpedia.OutcomeSkipped:
			res.Skipped++
			event.Type = ProgressSkipped
		case datpedia.OutcomeFailed:
			res.Failed++
			event.Type = ProgressFailed
		}

		if progress != nil {
			progress(event)
		}

		if o.Reports != nil && reportErr == nil {
			if err := o.Reports.CreateOutcome(ctx, result.outcome(run.ID)); err != nil {
				reportErr = fmt.Errorf("record outcome of %s: %w", result.slug, err)
				cancel()
			}
		}
	}

	for i, result := range results {
		if done[i] && result.status == datpedia.OutcomeWritten {
			res.Slugs = append(res.Slugs, result.slug)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: completed,
			Total:     total,
		})
	}

	if groupErr != nil {
		return res, groupErr
	}
	if reportErr != nil {
		return res, reportErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if o.Reports != nil {
		run.Written = res.Written
		run.Skipped = res.Skipped
		run.Failed = res.Failed
		run.FinishedAt = time.Now().UTC()
		if err := o.Reports.FinishRun(ctx, run); err != nil {
			return res, fmt.Errorf("finish run report: %w", err)
		}
	}

	return res, nil
}

// process reads, normalizes and writes a single article. A fatal result
// carries a write failure that must abort the batch.
func (o *Orchestrator) process(ctx context.Context, position int, corpus, slug string) docResult {
	result := docResult{
		position: position,
		slug:     slug,
	}

	doc, err := o.Source.ReadDocument(ctx, corpus, slug)
	if datpedia.ErrorCode(err) == datpedia.EMISSINGSOURCE {
		result.status = datpedia.OutcomeSkipped
		result.err = err
		result.diagnostics = []datpedia.Diagnostic{{
			Kind:   datpedia.DiagnosticMissingSource,
			Slug:   slug,
			Detail: datpedia.ErrorMessage(err),
		}}
		return result
	}
	if err != nil {
		result.status = datpedia.OutcomeFailed
		result.err = err
		return result
	}

	if err := o.Normalizer.Normalize(ctx, doc); err != nil {
		result.status = datpedia.OutcomeFailed
		result.err = err
		result.diagnostics = doc.Diagnostics
		return result
	}
	result.diagnostics = doc.Diagnostics

	doc.ContentHash = ComputeHash(doc.Content)
	if err := o.Writer.WriteDocument(ctx, doc); err != nil {
		result.status = datpedia.OutcomeFailed
		result.err = fmt.Errorf("write %s: %w", slug, err)
		result.fatal = true
		return result
	}

	result.status = datpedia.OutcomeWritten
	result.hash = doc.ContentHash
	result.bytes = len(doc.Content)
	return result
}

func (r docResult) outcome(runID string) *datpedia.Outcome {
	o := &datpedia.Outcome{
		RunID:       runID,
		Slug:        r.slug,
		Status:      r.status,
		ContentHash: r.hash,
		Bytes:       r.bytes,
		Diagnostics: len(r.diagnostics),
	}
	if r.err != nil {
		o.Error = datpedia.ErrorMessage(r.err)
	}
	return o
}
