// Package fs provides file-based access to dump source trees and offline
// destination trees.
//
// A source tree holds one directory per corpus:
//
//	<root>/<corpus>/A/<slug>.html
//	<root>/<corpus>/I/m/<path>
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/datpedia"
)

// Ensure SourceTree implements the source interfaces at compile time.
var (
	_ datpedia.DocumentSource = (*SourceTree)(nil)
	_ datpedia.ImageStore     = (*SourceTree)(nil)
)

// SourceTree reads articles and images from an extracted dump.
// It is safe for concurrent use.
type SourceTree struct {
	root string
}

// NewSourceTree creates a SourceTree rooted at root.
func NewSourceTree(root string) *SourceTree {
	return &SourceTree{root: root}
}

// Root returns the directory the tree is rooted at.
func (s *SourceTree) Root() string {
	return s.root
}

func (s *SourceTree) articleDir(corpus string) string {
	return filepath.Join(s.root, corpus, filepath.FromSlash(datpedia.ArticleDir))
}

// DocumentPath returns the file path of an article.
func (s *SourceTree) DocumentPath(corpus, slug string) string {
	return filepath.Join(s.articleDir(corpus), slug+datpedia.ArticleExt)
}

// ListDocuments returns the slugs of all .html files in the article
// directory of corpus, sorted by file name.
func (s *SourceTree) ListDocuments(ctx context.Context, corpus string) ([]string, error) {
	if err := datpedia.ValidateCorpus(corpus); err != nil {
		return nil, err
	}

	dir := s.articleDir(corpus)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, datpedia.Errorf(datpedia.ENOTFOUND, "corpus %q has no article directory at %s", corpus, dir)
	}
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, datpedia.ArticleExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, datpedia.ArticleExt))
	}
	return slugs, nil
}

// ReadDocument reads the source HTML of an article.
func (s *SourceTree) ReadDocument(ctx context.Context, corpus, slug string) (*datpedia.Document, error) {
	doc := &datpedia.Document{Corpus: corpus, Slug: slug}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	filename := s.DocumentPath(corpus, slug)
	b, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, datpedia.Errorf(datpedia.EMISSINGSOURCE, "not found: %s", filename)
	}
	if err != nil {
		return nil, err
	}

	doc.Source = string(b)
	return doc, nil
}

// ReadImage reads an image asset. p is slash separated and relative to the
// corpus directory; it must not escape it.
func (s *SourceTree) ReadImage(ctx context.Context, corpus, p string) ([]byte, error) {
	filename, err := s.imagePath(corpus, p)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, datpedia.Errorf(datpedia.EMISSINGIMAGE, "image not found: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// HasImage reports whether an image asset exists.
func (s *SourceTree) HasImage(ctx context.Context, corpus, p string) (bool, error) {
	filename, err := s.imagePath(corpus, p)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *SourceTree) imagePath(corpus, p string) (string, error) {
	if err := datpedia.ValidateCorpus(corpus); err != nil {
		return "", err
	}
	rel := filepath.FromSlash(p)
	if !filepath.IsLocal(rel) {
		return "", datpedia.Errorf(datpedia.EINVALID, "image path %q escapes corpus %q", p, corpus)
	}
	return filepath.Join(s.root, corpus, rel), nil
}
