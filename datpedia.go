// Package datpedia builds offline article sets from encyclopedia dumps.
// It strips executable content from exported HTML articles, inlines local
// images as data URIs and rewrites intra-corpus links into fragment
// references so the whole corpus can be served from a read-only archive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, goquery/).
package datpedia

// Source and destination tree layout, relative to a corpus directory.
const (
	// ArticleDir holds one HTML file per article.
	ArticleDir = "A"

	// ImageDir holds the image assets referenced by articles.
	ImageDir = "I/m"

	// ArticleExt is the extension of article files and intra-corpus links.
	ArticleExt = ".html"

	// ManifestName is the file listing every article slug of a corpus.
	ManifestName = "list.txt"
)
