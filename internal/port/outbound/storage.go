// Package outbound defines the interfaces for services the storefront
// depends on. Adapters in internal/adapter/outbound implement them.
package outbound

import "context"

// KeyValueStore persists raw JSON values by key. It backs the cart and
// session stores; implementations exist for a JSON file, sqlite, and an
// in-memory map for tests.
type KeyValueStore interface {
	// Get returns the value for key. The second return is false when the
	// key has never been set (not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
