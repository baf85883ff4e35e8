package mock

import (
	"context"

	"github.com/fwojciec/datpedia"
)

var _ datpedia.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of datpedia.ImageStore.
type ImageStore struct {
	ReadImageFn func(ctx context.Context, corpus, path string) ([]byte, error)
	HasImageFn  func(ctx context.Context, corpus, path string) (bool, error)
}

func (s *ImageStore) ReadImage(ctx context.Context, corpus, path string) ([]byte, error) {
	return s.ReadImageFn(ctx, corpus, path)
}

func (s *ImageStore) HasImage(ctx context.Context, corpus, path string) (bool, error) {
	return s.HasImageFn(ctx, corpus, path)
}

var _ datpedia.ImageInliner = (*ImageInliner)(nil)

// ImageInliner is a mock implementation of datpedia.ImageInliner.
type ImageInliner struct {
	InlineImageFn func(ctx context.Context, corpus, ref string) (string, error)
}

func (i *ImageInliner) InlineImage(ctx context.Context, corpus, ref string) (string, error) {
	return i.InlineImageFn(ctx, corpus, ref)
}
