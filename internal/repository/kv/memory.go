package kv

import (
	"context"
	"sync"

	"paintland/internal/domain"
)

type memoryRepo struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

// NewMemory returns a process-local Repository. Data is lost on restart.
func NewMemory() Repository {
	return &memoryRepo{entries: make(map[string]map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, namespace, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[namespace][key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *memoryRepo) Put(_ context.Context, namespace, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[namespace] == nil {
		r.entries[namespace] = make(map[string][]byte)
	}
	r.entries[namespace][key] = append([]byte(nil), value...)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, namespace, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries[namespace], key)
	return nil
}
