package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/datpedia"
)

// Ensure LoggingNormalizer implements datpedia.Normalizer.
var _ datpedia.Normalizer = (*LoggingNormalizer)(nil)

// LoggingNormalizer wraps a Normalizer with debug logging.
type LoggingNormalizer struct {
	next   datpedia.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next datpedia.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Normalize delegates to the wrapped normalizer and logs size changes.
func (n *LoggingNormalizer) Normalize(ctx context.Context, doc *datpedia.Document) (err error) {
	defer func(begin time.Time) {
		n.logger.Debug("normalize document",
			"corpus", doc.Corpus,
			"slug", doc.Slug,
			"source_bytes", len(doc.Source),
			"content_bytes", len(doc.Content),
			"diagnostics", len(doc.Diagnostics),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Normalize(ctx, doc)
}
