package tenant

import "context"

// Topic is the well-known invalidation topic and cache entity type for
// tenants.
const Topic = "Tenant"

// Tenant is an isolated customer account. The owning tenant service holds
// the source of truth; copies cached by other services are read-only
// projections that converge through the invalidation channel.
type Tenant struct {
	// ID is the tenant-unique identifier, immutable after creation.
	ID   string `json:"id"`
	Name string `json:"name"`

	// Properties is an opaque bag of tenant settings interpreted by the
	// consuming services, not by this core.
	Properties map[string][]string `json:"properties,omitempty"`

	// Key is the shared secret used for service-to-service authentication.
	// It travels only on the inter-service path and must never reach end
	// clients; render Public() on any client-facing surface.
	Key string `json:"key,omitempty"`
}

// Public returns a projection of the tenant safe to expose to end clients.
func (t Tenant) Public() Tenant {
	t.Key = ""
	return t
}

// Provider loads tenants from the source of truth. Implemented by the
// owning tenant service's storage layer; consumers of cached projections
// use AccessService instead.
type Provider interface {
	// GetByIdentifier retrieves a tenant by its unique identifier.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
