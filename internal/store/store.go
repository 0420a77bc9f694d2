// Package store implements durable key/value storage for FocusFlow: a
// structured SQLite primary, a flat diskv fallback, and an Adapter that
// picks between them.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("store closed")

// Backend is a string key/value store. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Get returns the value for key. found is false when the key is absent;
	// that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
