// Package health provides a registry of named subsystem health checkers.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status represents the health of a single subsystem.
type Status struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// Checker is a function that checks the health of a subsystem.
type Checker func(ctx context.Context) Status

// Registry holds named health checkers and runs them on demand.
type Registry struct {
	mu       sync.RWMutex
	checkers []namedChecker
}

type namedChecker struct {
	name  string
	check Checker
}

// NewRegistry creates a new health check registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named health checker.
func (r *Registry) Register(name string, check Checker) {
	r.mu.Lock()
	r.checkers = append(r.checkers, namedChecker{name: name, check: check})
	r.mu.Unlock()
}

// CheckAll runs all registered checkers and returns the aggregate health
// status plus individual subsystem results.
func (r *Registry) CheckAll(ctx context.Context) (healthy bool, statuses []Status) {
	r.mu.RLock()
	checkers := make([]namedChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	healthy = true
	statuses = make([]Status, len(checkers))

	for i, nc := range checkers {
		statuses[i] = nc.check(ctx)
		if !statuses[i].Healthy {
			healthy = false
		}
	}

	return healthy, statuses
}

// Loop is a periodic worker whose liveness can be probed.
type Loop interface {
	Name() string
	Running() bool
	Interval() time.Duration
	LastTick() time.Time
}

// StaleFactor is how many missed intervals mark a loop as stalled.
const StaleFactor = 3

// LoopChecker reports a loop unhealthy when it is stopped or has not ticked
// within StaleFactor intervals.
func LoopChecker(l Loop, now func() time.Time) Checker {
	if now == nil {
		now = time.Now
	}
	return func(_ context.Context) Status {
		st := Status{Name: l.Name()}
		if !l.Running() {
			st.Detail = "not running"
			return st
		}
		last := l.LastTick()
		if last.IsZero() {
			st.Healthy = true
			st.Detail = "awaiting first tick"
			return st
		}
		age := now().Sub(last)
		if age > time.Duration(StaleFactor)*l.Interval() {
			st.Detail = fmt.Sprintf("stale: last tick %s ago", age.Round(time.Millisecond))
			return st
		}
		st.Healthy = true
		return st
	}
}
