// Package medium holds the durable key-value backends behind the record store.
// Every backend stores opaque byte payloads under string keys.
package medium

import "context"

// Medium is a durable key-value backend
type Medium interface {
	// Get returns the payload for key and whether it exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the payload for key
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
