// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("key not found")

// KeyValue is the persistent device store: opaque string values addressed by
// string key. There is no transactional multi-key update guarantee; a crash
// between two related writes can leave them inconsistent and callers do not
// compensate for that.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
