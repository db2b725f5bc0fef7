package cart

import (
	"context"
	"io"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRegistryCapacity bounds how many device carts stay in memory.
const DefaultRegistryCapacity = 1024

// StoreFactory returns the Store for one device namespace.
type StoreFactory func(namespace string) Store

type registryEntry struct {
	once  sync.Once
	model *Model
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity sets how many namespaces are kept before the least recently
// used one is dropped. Values below one are ignored.
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// Registry hands out one Model per device namespace. A namespace's model is
// opened from storage the first time it is requested and reused until it is
// evicted; the next request after eviction reopens it from storage.
type Registry struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, *registryEntry]
	capacity int
	newStore StoreFactory
	logger   *log.Logger
}

func NewRegistry(newStore StoreFactory, logger *log.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Registry{
		capacity: DefaultRegistryCapacity,
		newStore: newStore,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	// capacity is always positive here, so New cannot fail.
	r.entries, _ = lru.NewWithEvict(r.capacity, func(namespace string, _ *registryEntry) {
		r.logger.Printf("cart registry: evicted namespace=%s", namespace)
	})
	return r
}

// Get returns the model for namespace, opening it on first use. The load is
// not cut short by ctx cancellation since the result is cached.
func (r *Registry) Get(ctx context.Context, namespace string) *Model {
	r.mu.Lock()
	entry, ok := r.entries.Get(namespace)
	if !ok {
		entry = &registryEntry{}
		r.entries.Add(namespace, entry)
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		entry.model = Open(context.WithoutCancel(ctx), r.newStore(namespace), r.logger)
		r.logger.Printf("cart registry: opened namespace=%s items=%d", namespace, len(entry.model.items))
	})
	return entry.model
}

// Len reports how many namespaces are currently held.
func (r *Registry) Len() int {
	return r.entries.Len()
}
