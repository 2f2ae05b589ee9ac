package service

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const idFilterFalsePositiveRate = 0.01

// IDFilter is a bloom filter over link ids that lets the resolver skip the
// store for identifiers that definitely do not exist. Deleted ids stay in the
// filter; a stale positive only costs one store miss, never a wrong NotFound.
type IDFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewIDFilter sizes the filter for the expected number of link ids.
func NewIDFilter(expectedIDs uint) *IDFilter {
	if expectedIDs == 0 {
		expectedIDs = 1024
	}
	return &IDFilter{filter: bloom.NewWithEstimates(expectedIDs, idFilterFalsePositiveRate)}
}

// Seed loads the current id set, typically at startup.
func (f *IDFilter) Seed(ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.filter.AddString(id)
	}
}

// Add records a freshly created id.
func (f *IDFilter) Add(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(id)
}

// MayContain reports whether the id could exist. False means definitely absent.
func (f *IDFilter) MayContain(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(id)
}
