package datpedia

import "strings"

// LinkKind classifies a hyperlink reference found in an article.
type LinkKind int

// Link kinds, in the order their rules are evaluated.
const (
	// LinkExternal is empty or points outside the corpus. Never rewritten.
	LinkExternal LinkKind = iota

	// LinkFragment points at an anchor inside the current article.
	LinkFragment

	// LinkUnrecognized is neither external nor an article file.
	LinkUnrecognized

	// LinkArticle points at another article of the corpus.
	LinkArticle
)

// String returns the name of the kind.
func (k LinkKind) String() string {
	switch k {
	case LinkExternal:
		return "external"
	case LinkFragment:
		return "fragment"
	case LinkUnrecognized:
		return "unrecognized"
	case LinkArticle:
		return "article"
	default:
		return "unknown"
	}
}

// linkRule matches references of one kind.
type linkRule struct {
	kind  LinkKind
	match func(ref string) bool
}

// linkRules is evaluated top to bottom and the first match wins.
// The fragment rule must precede the extension rules.
var linkRules = []linkRule{
	{LinkExternal, func(ref string) bool {
		return ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
	}},
	{LinkFragment, func(ref string) bool {
		return strings.HasPrefix(ref, "#")
	}},
	{LinkUnrecognized, func(ref string) bool {
		return !strings.HasSuffix(ref, ArticleExt)
	}},
	{LinkArticle, func(string) bool {
		return true
	}},
}

// ClassifyLink returns the kind of the first rule matching ref.
func ClassifyLink(ref string) LinkKind {
	for _, r := range linkRules {
		if r.match(ref) {
			return r.kind
		}
	}
	return LinkUnrecognized
}

// RewriteLink rewrites a hyperlink reference found in the article slug.
//
//	"Anarchism.html" → "#Anarchism"
//	"#cite_note-1"   → "#<slug>#cite_note-1"
//
// External and unrecognized references are returned unchanged. The kind is
// returned so callers can report unrecognized links.
func RewriteLink(ref, slug string) (string, LinkKind) {
	kind := ClassifyLink(ref)
	switch kind {
	case LinkFragment:
		return "#" + slug + ref, kind
	case LinkArticle:
		return "#" + LinkTarget(ref), kind
	default:
		return ref, kind
	}
}

// LinkTarget returns the slug an article link points at.
func LinkTarget(ref string) string {
	return strings.TrimSuffix(ref, ArticleExt)
}

// SlugSet reports whether a slug belongs to a corpus.
// Implementations may return false positives but never false negatives.
type SlugSet interface {
	Contains(slug string) bool
}
