// Package mimetype inlines image assets as data URIs, detecting their media
// type with github.com/gabriel-vasile/mimetype.
package mimetype

import (
	"context"
	"encoding/base64"
	"mime"
	"path"

	"github.com/fwojciec/datpedia"
	"github.com/gabriel-vasile/mimetype"
)

// fallbackType is returned by mimetype when the content is not recognized.
const fallbackType = "application/octet-stream"

// Ensure Inliner implements datpedia.ImageInliner at compile time.
var _ datpedia.ImageInliner = (*Inliner)(nil)

// Inliner implements datpedia.ImageInliner on top of an ImageStore.
type Inliner struct {
	store datpedia.ImageStore
}

// NewInliner creates an Inliner reading images from store.
func NewInliner(store datpedia.ImageStore) *Inliner {
	return &Inliner{store: store}
}

// InlineImage returns ref unchanged unless it starts with
// datpedia.ImagePrefix, in which case the image is read and returned as a
// base64 data URI.
func (i *Inliner) InlineImage(ctx context.Context, corpus, ref string) (string, error) {
	p, ok, err := datpedia.ImagePath(ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return ref, nil
	}

	data, err := i.store.ReadImage(ctx, corpus, p)
	if err != nil {
		return "", err
	}

	return DataURI(MediaType(p, data), data), nil
}

// MediaType infers the media type of an image from its content, falling
// back to the extension of name. Parameters such as charset are dropped.
func MediaType(name string, data []byte) string {
	mt := essence(mimetype.Detect(data).String())
	if mt != fallbackType {
		return mt
	}
	if byExt := essence(mime.TypeByExtension(path.Ext(name))); byExt != "" {
		return byExt
	}
	return fallbackType
}

// essence strips parameters from a media type.
func essence(mt string) string {
	if mt == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return mt
	}
	return parsed
}

// DataURI encodes data as a base64 data URI of the given media type.
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
