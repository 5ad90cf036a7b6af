package desktop

import (
	"errors"
	"sort"
	"sync"
)

// ErrTooManySessions is returned when the registry is full
var ErrTooManySessions = errors.New("too many desktop sessions")

// Registry tracks live runners up to a limit
type Registry struct {
	mu      sync.RWMutex
	runners map[string]*Runner
	max     int
}

// NewRegistry creates a registry. A max of zero or less means no limit.
func NewRegistry(limit int) *Registry {
	return &Registry{
		runners: make(map[string]*Runner),
		max:     limit,
	}
}

// Add registers a runner
func (r *Registry) Add(run *Runner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max > 0 && len(r.runners) >= r.max {
		return ErrTooManySessions
	}
	r.runners[run.ID()] = run
	return nil
}

// Remove forgets a runner. It reports whether the runner was registered.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runners[id]; !ok {
		return false
	}
	delete(r.runners, id)
	return true
}

// Get returns a registered runner
func (r *Registry) Get(id string) (*Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runners[id]
	return run, ok
}

// Count returns the number of registered runners
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runners)
}

// IDs returns the registered session ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.runners))
	for id := range r.runners {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Max returns the session limit
func (r *Registry) Max() int {
	return r.max
}
