package storage

import (
	"context"
	"errors"
)

// ErrNotFound signals an absent key. Implementations must return it
// (possibly wrapped) so callers can tell a miss from an I/O failure.
var ErrNotFound = errors.New("storage: key not found")

// Medium is the persistent key-value surface the offline layer writes
// through. Values are opaque bytes; serialization, namespacing and
// expiry all live above this interface so every implementation stores
// the exact same representation.
type Medium interface {
	// Get returns the stored value, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the value, overwriting any previous one.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}
