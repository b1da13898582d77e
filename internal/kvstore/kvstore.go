// Package kvstore provides the durable key-value medium the record store
// persists into.
//
// The KV interface is the primary abstraction. SQLiteKV is the default
// implementation using pure-Go SQLite (modernc.org/sqlite); MemoryKV backs
// tests and ephemeral runs. Values are opaque blobs; all serialization
// happens above this layer.
package kvstore

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore: closed")

// KV is the durable key-value medium.
type KV interface {
	// Get retrieves the blob stored under key. Returns (nil, nil) when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key (upsert).
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the given keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error

	// Close shuts down the medium.
	Close() error
}
