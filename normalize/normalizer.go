// Package normalize turns exported dump articles into offline articles.
//
// Normalization is line oriented: the dump exporter writes one tag per line
// for the elements that matter here, so lines are classified independently
// instead of building a parse tree.
package normalize

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/datpedia"
)

// Canonical replacements for the presentation elements of an article.
const (
	StylesheetLink = `<link rel="stylesheet" href="./style.css">`
	BodyTag        = `<body class="mw-body mw-body-content mediawiki">`
)

// Line markers.
const (
	scriptMarker     = "<script"
	stylesheetMarker = `<link rel="stylesheet"`
	bodyMarker       = "<body "
)

// Reference patterns. The second submatch is the reference itself.
var (
	imageRefPattern = regexp.MustCompile(`(<img\b[^>]*?\ssrc=")([^"]*)"`)
	linkRefPattern  = regexp.MustCompile(`(<a\b[^>]*?\shref=")([^"]*)"`)
)

// Ensure Normalizer implements datpedia.Normalizer at compile time.
var _ datpedia.Normalizer = (*Normalizer)(nil)

// Normalizer implements datpedia.Normalizer.
// It is stateless between documents and safe for concurrent use.
type Normalizer struct {
	images datpedia.ImageInliner
	known  datpedia.SlugSet
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSlugSet reports article links whose target is not in set.
func WithSlugSet(set datpedia.SlugSet) Option {
	return func(n *Normalizer) {
		n.known = set
	}
}

// NewNormalizer creates a Normalizer that inlines images through images.
func NewNormalizer(images datpedia.ImageInliner, opts ...Option) *Normalizer {
	n := &Normalizer{images: images}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize transforms doc.Source into doc.Content:
//
//  1. lines are trimmed and lines containing a script tag dropped
//  2. the first stylesheet link becomes StylesheetLink, later ones are dropped
//  3. the body tag becomes BodyTag
//  4. local image references are inlined
//  5. hyperlinks are rewritten with datpedia.RewriteLink
//
// doc.Diagnostics is replaced with the findings of this pass.
func (n *Normalizer) Normalize(ctx context.Context, doc *datpedia.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	t := &transform{doc: doc}
	doc.Diagnostics = nil

	html := t.normalizeLines(doc.Source)

	html, err := replaceRefs(html, imageRefPattern, func(ref string) (string, error) {
		return n.images.InlineImage(ctx, doc.Corpus, ref)
	})
	if err != nil {
		return err
	}

	html, err = replaceRefs(html, linkRefPattern, func(ref string) (string, error) {
		return n.rewriteLink(t, ref), nil
	})
	if err != nil {
		return err
	}

	doc.Content = html
	return nil
}

func (n *Normalizer) rewriteLink(t *transform, ref string) string {
	out, kind := datpedia.RewriteLink(ref, t.doc.Slug)
	switch kind {
	case datpedia.LinkUnrecognized:
		t.report(datpedia.DiagnosticUnrecognizedLink, ref)
	case datpedia.LinkArticle:
		if n.known != nil && !n.isKnown(datpedia.LinkTarget(ref)) {
			t.report(datpedia.DiagnosticDanglingLink, ref)
		}
	}
	return out
}

// isKnown checks the target as written and, if escaped, as decoded.
func (n *Normalizer) isKnown(target string) bool {
	if n.known.Contains(target) {
		return true
	}
	decoded, err := url.PathUnescape(target)
	return err == nil && decoded != target && n.known.Contains(decoded)
}

// transform holds the state of one document's normalization.
type transform struct {
	doc               *datpedia.Document
	stylesheetEmitted bool
}

func (t *transform) report(kind datpedia.DiagnosticKind, detail string) {
	t.doc.Diagnostics = append(t.doc.Diagnostics, datpedia.Diagnostic{
		Kind:   kind,
		Slug:   t.doc.Slug,
		Detail: detail,
	})
}

// normalizeLines applies the line rules and rejoins the surviving lines.
func (t *transform) normalizeLines(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.Contains(line, scriptMarker) {
			continue
		}
		switch {
		case strings.HasPrefix(line, stylesheetMarker):
			if t.stylesheetEmitted {
				t.report(datpedia.DiagnosticDuplicateStylesheet, line)
				continue
			}
			t.stylesheetEmitted = true
			line = StylesheetLink
		case strings.HasPrefix(line, bodyMarker):
			line = BodyTag
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// replaceRefs calls fn for the reference captured by every match of re and
// substitutes the result. It stops at the first error.
func replaceRefs(s string, re *regexp.Regexp, fn func(ref string) (string, error)) (string, error) {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[4], m[5]
		ref, err := fn(s[start:end])
		if err != nil {
			return "", err
		}
		b.WriteString(s[last:start])
		b.WriteString(ref)
		last = end
	}
	b.WriteString(s[last:])
	return b.String(), nil
}
