package main

import (
	"fmt"

	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/batch"
)

// TransformCmd transforms the articles of a corpus.
type TransformCmd struct {
	Corpus   string
	Slugs    []string // nil means every article in the source tree
	Manifest bool
}

// Run executes the transform command.
func (c *TransformCmd) Run(deps *Dependencies) error {
	progress := func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "transforming %d articles of %s\n", e.Total, c.Corpus)
		case batch.ProgressWritten:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Completed, e.Total, e.Slug)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] failed %s: %s\n", e.Completed, e.Total, e.Slug, errorText(e.Error))
		}
		for _, d := range e.Diagnostics {
			fmt.Fprintln(deps.Stderr, d.String())
		}
	}

	result, err := deps.Orchestrator.Run(deps.Ctx, c.Corpus, c.Slugs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.Manifest {
		if err := deps.Manifests.WriteManifest(deps.Ctx, c.Corpus, result.Slugs); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing manifest: %s\n", errorText(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d articles (%s), skipped %d, failed %d, %d diagnostics\n",
		result.Written, batch.FormatBytes(result.Bytes), result.Skipped, result.Failed, result.Diagnostics)

	if !result.OK() {
		return fmt.Errorf("%d of %d articles failed", result.Failed, result.Total)
	}
	return nil
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	if datpedia.ErrorCode(err) == datpedia.EINTERNAL {
		return err.Error()
	}
	return datpedia.ErrorMessage(err)
}
