// Package bloom provides article slug membership using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/datpedia"
)

// DefaultFalsePositiveRate is the rate used by NewSlugSet.
const DefaultFalsePositiveRate = 0.001

// Ensure Filter implements datpedia.SlugSet at compile time.
var _ datpedia.SlugSet = (*Filter)(nil)

// Filter wraps a Bloom filter of article slugs. A full dump holds millions
// of slugs, so a false positive (a dangling link going unreported) is
// traded for a fixed memory footprint.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected slugs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewSlugSet creates a Filter holding slugs.
func NewSlugSet(slugs []string) *Filter {
	f := NewFilter(uint(len(slugs)), DefaultFalsePositiveRate)
	for _, slug := range slugs {
		f.Add(slug)
	}
	return f
}

// Add adds a slug to the filter.
func (f *Filter) Add(slug string) {
	f.f.AddString(slug)
}

// Contains returns true if the slug might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Contains(slug string) bool {
	return f.f.TestString(slug)
}

// EstimatedCount returns the approximate number of slugs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
