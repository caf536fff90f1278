package ports

import (
	"context"
	"time"
)

// Cache is a best-effort key/value store for derived projections. Canonical
// data never lives here: a failed call degrades the caller to the uncached
// path, it must never abort a use case.
type Cache interface {
	// Get unmarshals the value stored under key into dest and reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
