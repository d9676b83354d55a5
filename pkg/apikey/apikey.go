// Package apikey holds the API key entity owned by the security service,
// its cache wiring, and its tenant-scoped repository. Other services keep
// read-only cached projections that converge through the invalidation
// channel, exactly like tenants do.
package apikey

import (
	"github.com/cloudforge/tenantcore/pkg/cache"
)

// Topic is the well-known invalidation topic and cache entity type for API
// keys.
const Topic = "ApiKey"

// ApiKey is an API credential scoped to one tenant. Roles carries the role
// codes evaluated by the authorization layer, which is outside this core.
type ApiKey struct {
	ID    string   `json:"id" bson:"_id"`
	Name  string   `json:"name" bson:"name"`
	Roles []string `json:"roles" bson:"roles"`
}

// EntityID returns the natural identity used for cache keys and storage.
func (k ApiKey) EntityID() string {
	return k.ID
}

// Identity extracts the identity field for invalidation dispatch.
func Identity(k ApiKey) string {
	return k.ID
}

// NewCache creates the API key cache service over the given store.
func NewCache(store cache.Store, opts ...cache.ServiceOption[ApiKey]) *cache.Service[ApiKey] {
	return cache.NewService[ApiKey](Topic, store, opts...)
}
