// Package storage is the durable key-value adapter behind the state store.
// Each domain collection persists independently under its own key; the
// store reads every key once at startup and rewrites a key whenever its
// collection changes.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value has been stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable string-keyed blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
