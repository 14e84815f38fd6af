package engine

import (
	"sort"
	"sync"
)

// registry stores name→value associations for templates, helpers, and
// components. Registration silently overwrites: the last write wins, name
// collisions are never an error. Lookup is by exact name.
type registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{entries: make(map[string]T)}
}

func (r *registry[T]) set(name string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = value
}

func (r *registry[T]) get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.entries[name]
	return value, ok
}

func (r *registry[T]) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// names returns a sorted list of registered names.
func (r *registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
