package tenant

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultTenantHeader is the header carrying the tenant identifier on both
// inbound requests and inter-service calls.
const DefaultTenantHeader = "tenantId"

// Resolver extracts a tenant identifier from an HTTP request. Resolvers
// hold no per-request state, so a single instance serves every inbound
// call concurrently.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request. Returns an
	// empty string when this strategy finds nothing; an error only when
	// extraction itself fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// HeaderResolver reads the tenant identifier from an HTTP header.
type HeaderResolver struct {
	// HeaderName is the header to read. Empty selects DefaultTenantHeader.
	HeaderName string
}

// NewHeaderResolver creates a header-based resolver.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = DefaultTenantHeader
	}
	return &HeaderResolver{HeaderName: headerName}
}

// Resolve returns the configured header's value, empty if absent.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// Claims is the minimal view of authenticated token claims the claim
// resolver needs.
type Claims interface {
	GetString(name string) string
}

// ClaimResolver reads the tenant identifier from the authenticated
// principal's token claims.
type ClaimResolver struct {
	// ClaimName is the claim to read. Empty selects "tenantId".
	ClaimName string

	// GetClaims retrieves the claims attached to the request by the
	// authentication layer. A nil return means no authenticated principal.
	GetClaims func(r *http.Request) (Claims, error)
}

// NewClaimResolver creates a claim-based resolver.
func NewClaimResolver(claimName string, getClaims func(r *http.Request) (Claims, error)) *ClaimResolver {
	if claimName == "" {
		claimName = "tenantId"
	}
	return &ClaimResolver{ClaimName: claimName, GetClaims: getClaims}
}

// Resolve returns the configured claim's value, empty if the request has no
// authenticated claims.
func (r *ClaimResolver) Resolve(req *http.Request) (string, error) {
	if r.GetClaims == nil {
		return "", errors.New("claim resolver: GetClaims function not configured")
	}

	claims, err := r.GetClaims(req)
	if err != nil {
		return "", fmt.Errorf("claim resolver: %w", err)
	}
	if claims == nil {
		return "", nil
	}
	return claims.GetString(r.ClaimName), nil
}

// StaticResolver always returns a fixed identifier. Intended for
// single-tenant deployments where every call belongs to one global tenant.
type StaticResolver struct {
	Identifier string
}

// NewStaticResolver creates a resolver pinned to one tenant.
func NewStaticResolver(identifier string) *StaticResolver {
	return &StaticResolver{Identifier: identifier}
}

// Resolve returns the fixed identifier.
func (r *StaticResolver) Resolve(*http.Request) (string, error) {
	return r.Identifier, nil
}

// CompositeResolver tries the configured strategies in order; the first
// non-empty identifier wins.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a resolver chaining the given strategies.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve returns the first non-empty identifier produced by the chain.
// Strategy errors are collected and only surfaced when no strategy
// produced a value.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error

	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
	}
	return "", nil
}
