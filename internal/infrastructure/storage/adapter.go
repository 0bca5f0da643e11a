// Package storage is the persistent key-value layer behind the cart.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// ErrCorrupt is returned by Get when the backing store cannot be decoded.
// The next Set replaces the damaged data.
var ErrCorrupt = errors.New("storage: data is corrupt")

// Adapter is a string key-value store, the Go side of browser local storage.
type Adapter interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
