// Package storage is the key/value port the state store persists through,
// with in-memory, Redis, PostgreSQL and filesystem backends.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a synchronous key/value store. Set fully replaces any previous
// value under the key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
