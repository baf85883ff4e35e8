package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes article below corpus", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewWriter(root)

		err := w.WriteDocument(context.Background(), &datpedia.Document{
			Corpus:  "w",
			Slug:    "Star_Wars",
			Content: "<p>offline</p>",
		})

		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(root, "w", "A", "Star_Wars.html"))
		require.NoError(t, err)
		assert.Equal(t, "<p>offline</p>", string(got))
		assert.Equal(t, filepath.Join(root, "w", "A", "Star_Wars.html"), w.DocumentPath("w", "Star_Wars"))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewWriter(root)

		for _, content := range []string{"one", "two"} {
			require.NoError(t, w.WriteDocument(context.Background(), &datpedia.Document{
				Corpus: "w", Slug: "Star_Wars", Content: content,
			}))
		}

		entries, err := os.ReadDir(filepath.Join(root, "w", "A"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Star_Wars.html", entries[0].Name())

		got, err := os.ReadFile(w.DocumentPath("w", "Star_Wars"))
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))
	})

	t.Run("does not rewrite unchanged article", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewWriter(root)
		doc := &datpedia.Document{Corpus: "w", Slug: "Star_Wars", Content: "same"}
		require.NoError(t, w.WriteDocument(context.Background(), doc))

		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(w.DocumentPath("w", "Star_Wars"), past, past))

		require.NoError(t, w.WriteDocument(context.Background(), doc))

		info, err := os.Stat(w.DocumentPath("w", "Star_Wars"))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past), "unchanged file should keep its mtime")
	})

	t.Run("returns EWRITE when destination is blocked", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		// A regular file where the corpus directory should be.
		require.NoError(t, os.WriteFile(filepath.Join(root, "w"), []byte("x"), 0644))

		err := fs.NewWriter(root).WriteDocument(context.Background(), &datpedia.Document{
			Corpus: "w", Slug: "Star_Wars", Content: "x",
		})

		require.Error(t, err)
		assert.Equal(t, datpedia.EWRITE, datpedia.ErrorCode(err))
	})

	t.Run("returns EINVALID for invalid slug", func(t *testing.T) {
		t.Parallel()

		err := fs.NewWriter(t.TempDir()).WriteDocument(context.Background(), &datpedia.Document{
			Corpus: "w", Slug: "a/b",
		})

		require.Error(t, err)
		assert.Equal(t, datpedia.EINVALID, datpedia.ErrorCode(err))
	})
}

func TestWriter_WriteManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := fs.NewWriter(root)

	err := w.WriteManifest(context.Background(), "w", []string{"Star_Wars", "Anarchism"})

	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(root, "w", "list.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Star_Wars\nAnarchism\n", string(got))
	assert.Equal(t, filepath.Join(root, "w", "list.txt"), w.ManifestPath("w"))
}
