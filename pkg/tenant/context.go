package tenant

import (
	"context"
	"log/slog"
)

// Private context key types prevent collisions with other packages.
type tenantKey struct{}
type identifierKey struct{}

// WithTenant attaches a resolved tenant to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext retrieves the tenant from the context.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*Tenant)
	return t, ok
}

// MustFromContext retrieves the tenant from the context, panicking if none
// is present. Use only on call paths guaranteed to run behind Middleware.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// IDFromContext retrieves just the tenant ID from the context.
func IDFromContext(ctx context.Context) (string, bool) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return "", false
	}
	return t.ID, true
}

// WithIdentifier attaches a raw tenant identifier to the context before the
// full tenant has been loaded. AccessService falls back to it when called
// without an explicit identifier.
func WithIdentifier(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, identifierKey{}, identifier)
}

// IdentifierFromContext retrieves the raw tenant identifier, preferring the
// fully resolved tenant when both are present.
func IdentifierFromContext(ctx context.Context) (string, bool) {
	if id, ok := IDFromContext(ctx); ok && id != "" {
		return id, true
	}
	id, ok := ctx.Value(identifierKey{}).(string)
	return id, ok && id != ""
}

// LoggerExtractor returns a context extractor for the logger package that
// stamps every record with the current tenant ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IdentifierFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
