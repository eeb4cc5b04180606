// Package kv is the persistent blob store behind the storefront: named keys
// mapped to serialized values, surviving restarts until explicitly removed.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

type Store interface {
	// Get returns ErrNotFound when key has never been set or was removed.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries []Entry) error
	Close() error
}
