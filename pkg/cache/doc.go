// Package cache provides a TTL-based cache service for externally-owned
// entities shared across service instances.
//
// The package separates policy from storage. Service applies freshness
// semantics and deterministic key derivation for one entity type, while the
// Store interface is a thin contract over an external key/value state store
// (Redis in production, an in-memory map in tests). Stored values are
// self-describing entries that carry their own creation timestamp and
// expiry, so any instance reading the entry can decide freshness locally
// without coordination.
//
// # Usage
//
//	store := cache.NewRedisStore(redisClient)
//	tenants := cache.NewService[tenant.Tenant]("Tenant", store)
//
//	if t, ok, err := tenants.Get(ctx, tenants.Key("acme")); err == nil && ok {
//		// cache hit, t is fresh
//	}
//
// Entries are replaced wholesale on every update (last write wins). Stale
// entries are treated as absent and deleted lazily on the next read; there
// is no background sweeper because the backing store enforces its own TTL
// hint as a safety net.
package cache
