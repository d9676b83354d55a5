// Package repository provides the generic tenant-scoped data-access base
// every domain repository derives from.
//
// The base resolves the current tenant through an injected accessor before
// any storage operation and injects the tenant identity into every filter
// and document it touches. The effective storage scope is therefore always
// derived from the resolved tenant, never from caller-supplied input, so
// tenants stay isolated even if a caller omits or forges a scoping
// parameter.
//
// Concrete repositories embed Base and layer entity-specific queries and
// partial-field updates on top:
//
//	type Repository struct {
//		*repository.Base[ApiKey]
//	}
//
//	func NewRepository(db *mongo.Database, tenants repository.TenantAccessor) *Repository {
//		return &Repository{Base: repository.NewBase[ApiKey](db, "api_keys", tenants)}
//	}
package repository
