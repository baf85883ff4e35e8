// Package goquery scans article HTML for references using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/datpedia"
)

// Ensure Scanner implements datpedia.ReferenceScanner at compile time.
var _ datpedia.ReferenceScanner = (*Scanner)(nil)

// Scanner finds image sources and anchor targets in article HTML.
// Unlike the line-oriented normalizer it parses the whole document, so it
// also sees references the exporter split across lines.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns image and link references in document order.
// Duplicates are kept so counts reflect occurrences.
func (s *Scanner) Scan(html string) (*datpedia.References, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, datpedia.Errorf(datpedia.EINVALID, "failed to parse HTML: %v", err)
	}

	refs := &datpedia.References{}

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok {
			refs.Images = append(refs.Images, src)
		}
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			refs.Links = append(refs.Links, href)
		}
	})

	return refs, nil
}
