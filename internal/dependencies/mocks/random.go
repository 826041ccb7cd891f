package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/hexmatch-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// WeightedResults is a queue of indices to return from Weighted
	WeightedResults []int
	weightedIndex   int

	// IDResults is a queue of results to return from ID
	IDResults []string
	idIndex   int
	generated int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Weighted returns the next queued index, or 0 if none remaining
func (r *MockRandom) Weighted(weights []int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.weightedIndex >= len(r.WeightedResults) {
		return 0
	}
	result := r.WeightedResults[r.weightedIndex]
	r.weightedIndex++
	return result
}

// ID returns the next queued result. Once the queue is empty it generates
// sequential IDs so callers still get unique values.
func (r *MockRandom) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idIndex >= len(r.IDResults) {
		r.generated++
		return fmt.Sprintf("mock-id-%d", r.generated)
	}
	result := r.IDResults[r.idIndex]
	r.idIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.IntnResults = append(r.IntnResults, values...)
}

// QueueWeighted adds indices to the Weighted result queue
func (r *MockRandom) QueueWeighted(indices ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.WeightedResults = append(r.WeightedResults, indices...)
}

// QueueID adds values to the ID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.IDResults = append(r.IDResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.IntnResults = nil
	r.intnIndex = 0
	r.WeightedResults = nil
	r.weightedIndex = 0
	r.IDResults = nil
	r.idIndex = 0
	r.generated = 0
}
