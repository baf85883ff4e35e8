package mock

import (
	"context"

	"github.com/fwojciec/datpedia"
)

var _ datpedia.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of datpedia.DocumentSource.
type DocumentSource struct {
	ListDocumentsFn func(ctx context.Context, corpus string) ([]string, error)
	ReadDocumentFn  func(ctx context.Context, corpus, slug string) (*datpedia.Document, error)
}

func (s *DocumentSource) ListDocuments(ctx context.Context, corpus string) ([]string, error) {
	return s.ListDocumentsFn(ctx, corpus)
}

func (s *DocumentSource) ReadDocument(ctx context.Context, corpus, slug string) (*datpedia.Document, error) {
	return s.ReadDocumentFn(ctx, corpus, slug)
}

var _ datpedia.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of datpedia.Normalizer.
type Normalizer struct {
	NormalizeFn func(ctx context.Context, doc *datpedia.Document) error
}

func (n *Normalizer) Normalize(ctx context.Context, doc *datpedia.Document) error {
	return n.NormalizeFn(ctx, doc)
}
