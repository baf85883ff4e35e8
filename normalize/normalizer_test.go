package normalize_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/mock"
	"github.com/fwojciec/datpedia/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInliner replaces local image references with a marker data URI.
func fakeInliner() *mock.ImageInliner {
	return &mock.ImageInliner{
		InlineImageFn: func(_ context.Context, _, ref string) (string, error) {
			if strings.HasPrefix(ref, datpedia.ImagePrefix) {
				return "data:image/png;base64,AAAA", nil
			}
			return ref, nil
		},
	}
}

func newDoc(source string) *datpedia.Document {
	return &datpedia.Document{
		Corpus: "wikipedia_en_all",
		Slug:   "Star_Wars",
		Source: source,
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a complete article", func(t *testing.T) {
		t.Parallel()

		source := strings.Join([]string{
			"<html>",
			"  <head>",
			`    <script src="../-/j/head.js"></script>`,
			`    <link rel="stylesheet" href="../-/s/style.css">`,
			`    <link rel="stylesheet" href="../-/s/mobile.css">`,
			"  </head>",
			`  <body class="mw-body" id="top">`,
			`    <p><a href="Anarchism.html">Anarchism</a> <a href="#cite_note-1">[1]</a></p>`,
			`    <img alt="Logo" src="../I/m/Logo.png">`,
			`    <a href="https://example.com/">external</a>`,
			"  </body>",
			"</html>",
		}, "\n")
		doc := newDoc(source)

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		want := strings.Join([]string{
			"<html>",
			"<head>",
			normalize.StylesheetLink,
			"</head>",
			normalize.BodyTag,
			`<p><a href="#Anarchism">Anarchism</a> <a href="#Star_Wars#cite_note-1">[1]</a></p>`,
			`<img alt="Logo" src="data:image/png;base64,AAAA">`,
			`<a href="https://example.com/">external</a>`,
			"</body>",
			"</html>",
		}, "\n")
		assert.Equal(t, want, doc.Content)
		require.Len(t, doc.Diagnostics, 1)
		assert.Equal(t, datpedia.DiagnosticDuplicateStylesheet, doc.Diagnostics[0].Kind)
		assert.Equal(t, "Star_Wars", doc.Diagnostics[0].Slug)
	})

	t.Run("drops every line containing a script tag", func(t *testing.T) {
		t.Parallel()

		doc := newDoc("<p>keep</p>\n<p>x</p><script>alert(1)</script>\n<SCRIPT>kept</SCRIPT>\n<script\n<p>end</p>")

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "<p>keep</p>\n<SCRIPT>kept</SCRIPT>\n<p>end</p>", doc.Content)
	})

	t.Run("keeps stylesheet at position of first occurrence", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(`<meta charset="utf-8">` + "\n" +
			`<link rel="stylesheet" href="a.css">` + "\n" +
			"<title>x</title>\n" +
			`<link rel="stylesheet" href="b.css">` + "\n" +
			`<link rel="stylesheet" href="c.css">`)

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, `<meta charset="utf-8">`+"\n"+normalize.StylesheetLink+"\n<title>x</title>", doc.Content)
		assert.Equal(t, 1, strings.Count(doc.Content, `rel="stylesheet"`))
		require.Len(t, doc.Diagnostics, 2)
		assert.Equal(t, `<link rel="stylesheet" href="b.css">`, doc.Diagnostics[0].Detail)
		assert.Equal(t, `<link rel="stylesheet" href="c.css">`, doc.Diagnostics[1].Detail)
	})

	t.Run("leaves body tag without attributes alone", func(t *testing.T) {
		t.Parallel()

		doc := newDoc("<body>\n<p>x</p>\n</body>")

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "<body>\n<p>x</p>\n</body>", doc.Content)
	})

	t.Run("reports unrecognized links and leaves them unchanged", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(`<a href="foo.png">file</a><a href="">empty</a>`)

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, `<a href="foo.png">file</a><a href="">empty</a>`, doc.Content)
		require.Len(t, doc.Diagnostics, 1)
		assert.Equal(t, datpedia.DiagnosticUnrecognizedLink, doc.Diagnostics[0].Kind)
		assert.Equal(t, "foo.png", doc.Diagnostics[0].Detail)
	})

	t.Run("rewrites links with attributes before href", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(`<a class="mw-redirect" title="Anarchism" href="Anarchism.html">A</a>`)

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, `<a class="mw-redirect" title="Anarchism" href="#Anarchism">A</a>`, doc.Content)
	})

	t.Run("does not treat other tags as links", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(`<abbr href="x.html">x</abbr><area href="Map.html">`)

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, `<abbr href="x.html">x</abbr><area href="Map.html">`, doc.Content)
		assert.Empty(t, doc.Diagnostics)
	})

	t.Run("passes remote images to inliner untouched", func(t *testing.T) {
		t.Parallel()

		var refs []string
		inliner := &mock.ImageInliner{
			InlineImageFn: func(_ context.Context, corpus, ref string) (string, error) {
				assert.Equal(t, "wikipedia_en_all", corpus)
				refs = append(refs, ref)
				return ref, nil
			},
		}
		doc := newDoc(`<img src="https://example.com/a.png"><img src="../I/m/b.png">`)

		err := normalize.NewNormalizer(inliner).Normalize(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a.png", "../I/m/b.png"}, refs)
	})

	t.Run("returns inliner error", func(t *testing.T) {
		t.Parallel()

		inliner := &mock.ImageInliner{
			InlineImageFn: func(_ context.Context, _, ref string) (string, error) {
				return "", datpedia.Errorf(datpedia.EMISSINGIMAGE, "image not found: %s", ref)
			},
		}
		doc := newDoc(`<img src="../I/m/gone.png">`)

		err := normalize.NewNormalizer(inliner).Normalize(context.Background(), doc)

		require.Error(t, err)
		assert.Equal(t, datpedia.EMISSINGIMAGE, datpedia.ErrorCode(err))
		assert.Empty(t, doc.Content)
	})

	t.Run("returns EINVALID for invalid slug", func(t *testing.T) {
		t.Parallel()

		doc := &datpedia.Document{Corpus: "wikipedia_en_all", Slug: "../etc"}

		err := normalize.NewNormalizer(fakeInliner()).Normalize(context.Background(), doc)

		require.Error(t, err)
		assert.Equal(t, datpedia.EINVALID, datpedia.ErrorCode(err))
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		t.Parallel()

		source := "<link rel=\"stylesheet\" href=\"a.css\">\n<link rel=\"stylesheet\" href=\"b.css\">\n<a href=\"x.png\">x</a>"
		n := normalize.NewNormalizer(fakeInliner())
		doc := newDoc(source)

		require.NoError(t, n.Normalize(context.Background(), doc))
		firstContent, firstDiags := doc.Content, doc.Diagnostics
		require.NoError(t, n.Normalize(context.Background(), doc))

		assert.Equal(t, firstContent, doc.Content)
		assert.Equal(t, firstDiags, doc.Diagnostics)
	})
}

func TestNormalizer_WithSlugSet(t *testing.T) {
	t.Parallel()

	known := &mock.SlugSet{
		ContainsFn: func(slug string) bool {
			return slug == "Anarchism" || slug == "Café"
		},
	}

	doc := newDoc(`<a href="Anarchism.html">a</a><a href="Caf%C3%A9.html">c</a><a href="Missing.html">m</a><a href="#top">t</a>`)

	err := normalize.NewNormalizer(fakeInliner(), normalize.WithSlugSet(known)).Normalize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, `<a href="#Anarchism">a</a><a href="#Caf%C3%A9">c</a><a href="#Missing">m</a><a href="#Star_Wars#top">t</a>`, doc.Content)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, datpedia.DiagnosticDanglingLink, doc.Diagnostics[0].Kind)
	assert.Equal(t, "Missing.html", doc.Diagnostics[0].Detail)
}
