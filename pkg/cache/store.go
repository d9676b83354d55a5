package cache

import (
	"context"
	"time"
)

// Store is a thin contract over an external key/value state store. It moves
// opaque bytes and carries no business logic; freshness decisions belong to
// Service. Implementations must provide atomic single-key operations, which
// is why the cache layer needs no in-process locking.
type Store interface {
	// Get returns the stored value for key, or ok=false if absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value. The ttlHint
	// lets the store expire the raw bytes on its own as a safety net; the
	// authoritative TTL lives inside the serialized entry.
	Set(ctx context.Context, key string, value []byte, ttlHint time.Duration) error

	// Delete removes the value for key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
