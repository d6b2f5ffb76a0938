// Package cache stores serialized calculation results for a bounded time.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is used when a store is created with a non-positive TTL.
const DefaultTTL = 10 * time.Minute

// Store is a string key/value cache. Implementations are safe for
// concurrent use. A miss and a backend failure both report ok=false from
// Get; Set returns backend failures so callers can log them.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}
