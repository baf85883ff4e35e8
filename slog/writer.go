package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/datpedia"
)

// Ensure LoggingDocumentWriter implements datpedia.DocumentWriter.
var _ datpedia.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with debug logging.
type LoggingDocumentWriter struct {
	next   datpedia.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next datpedia.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, doc *datpedia.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write document",
			"corpus", doc.Corpus,
			"slug", doc.Slug,
			"bytes", len(doc.Content),
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc)
}
