package cache

import "time"

// DefaultExpireMinutes is the entry lifetime applied when no TTL is
// configured on the service.
const DefaultExpireMinutes = 30

// Entry is the stored representation of a cached value. It is serialized as
// JSON into the backing store, carrying enough metadata for any reader to
// judge freshness without shared clocks or coordination.
type Entry[T any] struct {
	Data                T     `json:"data"`
	CreationTimestamp   int64 `json:"creationTimestamp"` // unix seconds
	ExpireTimeInMinutes int   `json:"expireTimeInMinutes"`
}

// Fresh reports whether the entry is still within its TTL at the given time.
// An entry with a non-positive TTL is never fresh.
func (e Entry[T]) Fresh(now time.Time) bool {
	if e.ExpireTimeInMinutes <= 0 {
		return false
	}
	age := now.Unix() - e.CreationTimestamp
	return age < int64(e.ExpireTimeInMinutes)*60
}
