// Package slog provides logging decorators for datpedia services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/datpedia"
)

// Ensure LoggingImageStore implements datpedia.ImageStore.
var _ datpedia.ImageStore = (*LoggingImageStore)(nil)

// LoggingImageStore wraps an ImageStore with debug logging.
type LoggingImageStore struct {
	next   datpedia.ImageStore
	logger *slog.Logger
}

// NewLoggingImageStore creates a new LoggingImageStore.
func NewLoggingImageStore(next datpedia.ImageStore, logger *slog.Logger) *LoggingImageStore {
	return &LoggingImageStore{next: next, logger: logger}
}

// ReadImage delegates to the wrapped store and logs the read.
func (s *LoggingImageStore) ReadImage(ctx context.Context, corpus, path string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read image",
			"corpus", corpus,
			"path", path,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadImage(ctx, corpus, path)
}

// HasImage delegates to the wrapped store.
func (s *LoggingImageStore) HasImage(ctx context.Context, corpus, path string) (bool, error) {
	return s.next.HasImage(ctx, corpus, path)
}
