// Package options defines the process-wide key-value store admin pages use
// for small persisted blobs, along with an in-memory implementation.
package options

import "context"

// Store persists opaque values by name. Implementations must treat a missing
// key as a non-error: Get returns found=false and Delete is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
