package planner

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
)

// ErrPlanNotFound is returned when a plan id is unknown.
var ErrPlanNotFound = errors.New("plan not found")

// Registry holds the live plans of this process. Each plan serializes its
// own mutations; the registry lock only guards the map itself.
type Registry struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plans: make(map[string]*Plan)}
}

// Create makes a new plan for the given month and registers it.
func (r *Registry) Create(year, month int) *Plan {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	p := NewPlan(hex.EncodeToString(buf), year, month)

	r.mu.Lock()
	r.plans[p.ID] = p
	r.mu.Unlock()
	return p
}

// Get looks up a plan by id.
func (r *Registry) Get(id string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

// Delete removes a plan.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.plans, id)
	r.mu.Unlock()
}
