package mock

import (
	"context"

	"github.com/fwojciec/datpedia"
)

var _ datpedia.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of datpedia.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *datpedia.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *datpedia.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

var _ datpedia.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter is a mock implementation of datpedia.ManifestWriter.
type ManifestWriter struct {
	WriteManifestFn func(ctx context.Context, corpus string, slugs []string) error
}

func (w *ManifestWriter) WriteManifest(ctx context.Context, corpus string, slugs []string) error {
	return w.WriteManifestFn(ctx, corpus, slugs)
}
