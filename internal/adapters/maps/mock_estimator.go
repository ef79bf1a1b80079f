package maps

import (
	"context"
	"sync"
)

type MockPair struct {
	From, To string
	Minutes  int
}

// MockEstimator serves fixed drive times from an in-memory table and
// counts lookups, so tests can assert both verdicts and how many
// upstream calls a code path would have made. Pairs not in the table
// resolve to ok=false. Safe for concurrent use.
type MockEstimator struct {
	mu    sync.Mutex
	m     map[string]int
	calls int
}

func NewMockEstimator(pairs []MockPair) *MockEstimator {
	m := make(map[string]int, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Minutes
	}
	return &MockEstimator{m: m}
}

func (e *MockEstimator) EstimateMinutes(ctx context.Context, origin, destination string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if origin == "" || destination == "" {
		return 0, false
	}

	minutes, ok := e.m[origin+"|"+destination]
	return minutes, ok
}

// Calls reports how many estimates have been requested.
func (e *MockEstimator) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}
