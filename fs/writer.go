package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/datpedia"
)

// Ensure Writer implements the destination interfaces at compile time.
var (
	_ datpedia.DocumentWriter = (*Writer)(nil)
	_ datpedia.ManifestWriter = (*Writer)(nil)
)

// Writer writes offline articles to a destination tree mirroring the source
// layout: <root>/<corpus>/A/<slug>.html.
//
// Files are written to a temporary file in the target directory and renamed
// into place, so an interrupted run never leaves a truncated article.
type Writer struct {
	root string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// DocumentPath returns the destination file path of an article.
func (w *Writer) DocumentPath(corpus, slug string) string {
	return filepath.Join(w.root, corpus, filepath.FromSlash(datpedia.ArticleDir), slug+datpedia.ArticleExt)
}

// ManifestPath returns the destination file path of a corpus manifest.
func (w *Writer) ManifestPath(corpus string) string {
	return filepath.Join(w.root, corpus, datpedia.ManifestName)
}

// WriteDocument writes doc.Content to disk. An existing file with identical
// content is left untouched.
func (w *Writer) WriteDocument(ctx context.Context, doc *datpedia.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return w.writeFile(w.DocumentPath(doc.Corpus, doc.Slug), doc.Content)
}

// WriteManifest writes the slug list of a corpus.
func (w *Writer) WriteManifest(ctx context.Context, corpus string, slugs []string) error {
	if err := datpedia.ValidateCorpus(corpus); err != nil {
		return err
	}
	return w.writeFile(w.ManifestPath(corpus), datpedia.FormatManifest(slugs))
}

func (w *Writer) writeFile(filename, content string) error {
	if unchanged(filename, content) {
		return nil
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return datpedia.Errorf(datpedia.EWRITE, "create directory %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return datpedia.Errorf(datpedia.EWRITE, "create temporary file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return datpedia.Errorf(datpedia.EWRITE, "write %s: %v", filename, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return datpedia.Errorf(datpedia.EWRITE, "chmod %s: %v", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return datpedia.Errorf(datpedia.EWRITE, "close %s: %v", filename, err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return datpedia.Errorf(datpedia.EWRITE, "rename %s: %v", filename, err)
	}
	return nil
}

// unchanged reports whether filename already holds content.
func unchanged(filename, content string) bool {
	info, err := os.Stat(filename)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Size() != int64(len(content)) {
		return false
	}
	existing, err := os.ReadFile(filename)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64String(content)
}
