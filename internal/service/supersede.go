package service

import (
	"context"
	"sync"
)

// SearchTracker cancels a profile's in-flight search when the same profile
// starts a newer one. The older search then completes as a canceled fallback.
type SearchTracker struct {
	mu       sync.Mutex
	inflight map[string]*inflightSearch
}

type inflightSearch struct {
	cancel context.CancelFunc
}

// NewSearchTracker creates an empty tracker
func NewSearchTracker() *SearchTracker {
	return &SearchTracker{inflight: make(map[string]*inflightSearch)}
}

// Begin registers a new search for profile and returns its context. The
// returned done func must be called when the search finishes.
func (t *SearchTracker) Begin(ctx context.Context, profile string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	current := &inflightSearch{cancel: cancel}

	t.mu.Lock()
	if previous, ok := t.inflight[profile]; ok {
		previous.cancel()
	}
	t.inflight[profile] = current
	t.mu.Unlock()

	done := func() {
		t.mu.Lock()
		if t.inflight[profile] == current {
			delete(t.inflight, profile)
		}
		t.mu.Unlock()
		cancel()
	}
	return ctx, done
}

// InFlight returns the number of profiles with a running search
func (t *SearchTracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
