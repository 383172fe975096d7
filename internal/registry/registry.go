package registry

import "sync"

// Registry is a concurrency safe map of named values.
// Registering an existing key overwrites its value.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K
}

func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]V),
	}
}

func (r *Registry[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = value
}

func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.entries[key]
	return v, ok
}

func (r *Registry[K, V]) Exists(key K) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the registered keys in registration order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}
