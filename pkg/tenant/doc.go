// Package tenant provides tenant identity resolution and the cached,
// authoritative tenant lookup that gates every tenant-scoped operation.
//
// The package is built around three concepts:
//
//  1. Resolvers extract a tenant identifier from an inbound request using
//     configurable strategies (header, claim, static), tried in order.
//  2. AccessService turns an identifier into an authoritative Tenant using
//     a read-through, write-through cache over the owning tenant service.
//  3. Context carriers propagate the resolved tenant along the call path so
//     repositories and services never rely on ambient global state.
//
// # Usage
//
//	resolver := tenant.NewCompositeResolver(
//		tenant.NewHeaderResolver(""),
//		tenant.NewClaimResolver("", claimsFromRequest),
//	)
//	access := tenant.NewAccessService(tenantCache, secretSource,
//		tenant.WithBaseURL("http://tenant-svc"))
//
//	router.Use(tenant.Middleware(resolver, access))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// all storage access is scoped to t.ID
//	}
//
// Errors follow a two-kind taxonomy: functional errors (missing or unknown
// tenant) carry stable machine-readable codes and propagate unchanged to
// callers; technical errors (remote, serialization, secret-store failures)
// are wrapped once where they occur and surface as the generic
// TECHNICAL_FAILURE kind.
package tenant
