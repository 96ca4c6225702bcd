package storage

import "context"

// KeyValue is the durable key-value store underpinning directory state.
// Values are JSON documents keyed by the logical names in keys.go; an absent
// key is reported through the found return, never as an error.
// Implementations must be thread-safe and support concurrent access.
type KeyValue interface {
	// Get reads the value stored under key.
	// Returns found=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Update atomically applies fn to the current value of key and stores the
	// result. fn receives nil when the key is absent. The read-modify-write
	// runs within a single transaction, so no other write to the same key can
	// interleave with it.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	// Close closes the store and releases resources.
	Close() error
}
