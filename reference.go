package datpedia

// References lists the references found in an article.
type References struct {
	Images []string
	Links  []string
}

// ReferenceScanner finds image and hyperlink references in article HTML.
type ReferenceScanner interface {
	Scan(html string) (*References, error)
}
