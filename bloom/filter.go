// Package bloom provides a probabilistic membership pre-check for crawl URLs.
//
// A negative answer is definitive, so callers consult an exact set only
// when the filter reports a possible hit.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected keys at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// MaybeContains reports whether key might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) MaybeContains(key string) bool {
	return f.f.TestString(key)
}

// TestAndAdd records key and reports whether it might have been present
// before the call.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of distinct keys added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
