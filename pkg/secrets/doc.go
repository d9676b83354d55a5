// Package secrets supplies the service-to-service credential material used
// by inter-service tenant lookups.
//
// The shared secret is retrieved from a Source (environment-backed in
// production, static in tests) under a well-known configuration key. The
// wire credential combines the tenant identifier with the secret as
// "{tenantId}.{secret}". For deployments that want per-tenant isolation of
// the secret itself, TenantSecret derives a tenant-specific value from the
// shared secret with HKDF-SHA256, so a leaked per-tenant credential does
// not expose the master secret.
package secrets
