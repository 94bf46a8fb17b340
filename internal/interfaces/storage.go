// Package interfaces defines service contracts for Ardex
package interfaces

import "context"

// StorageManager coordinates the local storage backends.
type StorageManager interface {
	KeyValueStorage() KeyValueStorage

	// Lifecycle
	Close() error
}

// KeyValueStorage is a string-keyed storage area. The vault record and
// the local transaction log each occupy one fixed key.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
