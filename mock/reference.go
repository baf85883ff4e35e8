package mock

import "github.com/fwojciec/datpedia"

var _ datpedia.ReferenceScanner = (*ReferenceScanner)(nil)

// ReferenceScanner is a mock implementation of datpedia.ReferenceScanner.
type ReferenceScanner struct {
	ScanFn func(html string) (*datpedia.References, error)
}

func (s *ReferenceScanner) Scan(html string) (*datpedia.References, error) {
	return s.ScanFn(html)
}

var _ datpedia.SlugSet = (*SlugSet)(nil)

// SlugSet is a mock implementation of datpedia.SlugSet.
type SlugSet struct {
	ContainsFn func(slug string) bool
}

func (s *SlugSet) Contains(slug string) bool {
	return s.ContainsFn(slug)
}
