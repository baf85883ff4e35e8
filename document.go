package datpedia

import (
	"context"
	"strings"
)

// Document represents one article of a corpus.
type Document struct {
	Corpus string `json:"corpus"`
	Slug   string `json:"slug"`

	// Source is the raw HTML as exported by the dump.
	Source string `json:"source"`

	// Content is the transformed HTML, set by a Normalizer.
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`

	// Diagnostics collects non-fatal findings from normalization.
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if err := ValidateCorpus(d.Corpus); err != nil {
		return err
	}
	return ValidateSlug(d.Slug)
}

// ValidateCorpus returns an error if name cannot be used as a corpus directory.
func ValidateCorpus(name string) error {
	if name == "" {
		return Errorf(EINVALID, "corpus name required")
	}
	if !isPathSegment(name) {
		return Errorf(EINVALID, "invalid corpus name %q", name)
	}
	return nil
}

// ValidateSlug returns an error if slug cannot be used as an article file name.
func ValidateSlug(slug string) error {
	if slug == "" {
		return Errorf(EINVALID, "document slug required")
	}
	if !isPathSegment(slug) {
		return Errorf(EINVALID, "invalid document slug %q", slug)
	}
	return nil
}

func isPathSegment(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

// DocumentSource reads articles from a source tree.
type DocumentSource interface {
	// ListDocuments returns the slugs of all articles in a corpus, sorted.
	// Returns ENOTFOUND if the corpus has no article directory.
	ListDocuments(ctx context.Context, corpus string) ([]string, error)

	// ReadDocument reads the source HTML of one article.
	// Returns EMISSINGSOURCE if the article file does not exist.
	ReadDocument(ctx context.Context, corpus, slug string) (*Document, error)
}

// DocumentWriter writes transformed articles to a destination tree.
// Implementations must write atomically: a reader never observes a
// partially written article.
type DocumentWriter interface {
	// WriteDocument stores doc.Content. Returns EWRITE on failure.
	WriteDocument(ctx context.Context, doc *Document) error
}

// ManifestWriter stores the list of article slugs of a corpus.
type ManifestWriter interface {
	WriteManifest(ctx context.Context, corpus string, slugs []string) error
}

// Normalizer transforms the source of one document into its offline form.
type Normalizer interface {
	// Normalize sets doc.Content and doc.Diagnostics from doc.Source.
	// Returns EMISSINGIMAGE if a referenced local image does not exist.
	Normalize(ctx context.Context, doc *Document) error
}
