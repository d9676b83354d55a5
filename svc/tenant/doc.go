// Package tenant implements the owning side of the tenant wire contract:
// the authenticated lookup endpoint consumed by every other service's
// tenant.AccessService, and the mutation service that broadcasts
// invalidation messages so remote cached projections converge.
//
// Routing beyond the single lookup route, DTO mapping, and the admin CRUD
// surface belong to the embedding application; this package covers only
// what the cache-consistency core depends on.
package tenant
