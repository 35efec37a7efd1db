package store

import (
	"context"
	"errors"
)

// ErrNotFound keeps store-level 404s consistent across backends.
var ErrNotFound = errors.New("item not found")

// Store is a key-value table store. Items are opaque JSON documents; callers
// convert their fixed-shape records to and from this encoding at the
// repository boundary.
//
// Scan is a linear full-table predicate match. That is acceptable for the
// dataset sizes this service targets, and the interface lets a backend swap
// in an indexed lookup without changing call sites. A nil match returns every
// item in the table.
type Store interface {
	Get(ctx context.Context, table, key string) ([]byte, error)
	Put(ctx context.Context, table, key string, item []byte) error
	Delete(ctx context.Context, table, key string) error
	Scan(ctx context.Context, table string, match func(item []byte) bool) ([][]byte, error)
}
