// Package session keeps per-visitor state holders in memory, keyed by an
// opaque id the web layer stores in a cookie. Entries idle for longer than the
// TTL are evicted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Registry maps session ids to values created on first use.
type Registry[T any] struct {
	mu        sync.Mutex
	entries   map[string]*entry[T]
	ttl       time.Duration
	newValue  func() T
	now       func() time.Time
	lastSweep time.Time
}

// New returns a Registry whose values are built by newValue and evicted after
// ttl without access.
func New[T any](ttl time.Duration, newValue func() T) *Registry[T] {
	return &Registry[T]{
		entries:  make(map[string]*entry[T]),
		ttl:      ttl,
		newValue: newValue,
		now:      time.Now,
	}
}

// Acquire returns the value for id and refreshes its idle timer. An unknown,
// empty or expired id gets a fresh value under a newly generated id; callers
// must hand the returned id back to the visitor.
func (r *Registry[T]) Acquire(id string) (string, T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if e, ok := r.entries[id]; ok {
		if now.Sub(e.lastSeen) <= r.ttl {
			e.lastSeen = now

			return id, e.value
		}
		delete(r.entries, id)
	}

	id = uuid.New().String()
	e := &entry[T]{value: r.newValue(), lastSeen: now}
	r.entries[id] = e

	return id, e.value
}

// Get returns the value for a live id and refreshes its idle timer. Unlike
// Acquire it never creates a session.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[id]; ok {
		if now.Sub(e.lastSeen) <= r.ttl {
			e.lastSeen = now

			return e.value, true
		}
		delete(r.entries, id)
	}

	var zero T

	return zero, false
}

// Len returns the number of live sessions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// sweep evicts expired entries, at most once per quarter TTL.
func (r *Registry[T]) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.ttl/4 {
		return
	}
	r.lastSweep = now

	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
}
