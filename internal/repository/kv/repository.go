package kv

import "context"

// Repository is durable key/value storage partitioned by namespace. A
// namespace plays the role of a browser origin: every device gets its own.
// Values are always replaced whole.
type Repository interface {
	// Get returns domain.ErrNotFound when the key has never been written.
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
}
