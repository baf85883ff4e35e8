package datpedia

import (
	"context"
	"net/url"
	"strings"
)

// ImagePrefix marks an image reference pointing into the corpus image
// directory, relative to an article file.
const ImagePrefix = "../" + ImageDir

// Image represents an image asset of a corpus.
type Image struct {
	Path      string // relative to the corpus directory, e.g. "I/m/a/b.png"
	MediaType string
	Data      []byte
}

// ImagePath reports whether ref points at a local image and returns the
// decoded path relative to the corpus directory.
// Returns EINVALID if ref is local but not a valid escaped path.
func ImagePath(ref string) (string, bool, error) {
	if !strings.HasPrefix(ref, ImagePrefix) {
		return "", false, nil
	}
	p, err := url.PathUnescape(strings.TrimPrefix(ref, "../"))
	if err != nil {
		return "", true, Errorf(EINVALID, "malformed image reference %q: %v", ref, err)
	}
	return p, true, nil
}

// ImageStore reads image assets. Implementations must be safe for
// concurrent use.
type ImageStore interface {
	// ReadImage returns the bytes of the image at path, relative to the
	// corpus directory. Returns EMISSINGIMAGE if it does not exist.
	ReadImage(ctx context.Context, corpus, path string) ([]byte, error)

	// HasImage reports whether the image at path exists.
	HasImage(ctx context.Context, corpus, path string) (bool, error)
}

// ImageInliner rewrites image references into self-contained data URIs.
type ImageInliner interface {
	// InlineImage returns ref unchanged unless it points at a local image,
	// in which case it returns a data URI embedding the image bytes.
	// Returns EMISSINGIMAGE if the image does not exist.
	InlineImage(ctx context.Context, corpus, ref string) (string, error)
}
