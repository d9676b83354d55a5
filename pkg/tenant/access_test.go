package tenant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudforge/tenantcore/pkg/cache"
	"github.com/cloudforge/tenantcore/pkg/secrets"
	"github.com/cloudforge/tenantcore/pkg/tenant"
)

func newTenantCache() *cache.Service[tenant.Tenant] {
	return cache.NewService[tenant.Tenant](tenant.Topic, cache.NewMemoryStore())
}

func TestAccessServiceWriteThrough(t *testing.T) {
	t.Parallel()

	acme := tenant.Tenant{ID: "acme", Name: "Acme Corp", Key: "svc-key"}
	var calls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/Tenant/acme", r.URL.Path)
		_ = json.NewEncoder(w).Encode(acme)
	}))
	defer srv.Close()

	svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource("s3cret"),
		tenant.WithBaseURL(srv.URL))

	ctx := context.Background()

	got, err := svc.GetTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, acme, *got)
	assert.EqualValues(t, 1, calls.Load(), "cold cache triggers exactly one remote call")

	// Within the TTL window the second read is served locally.
	got, err = svc.GetTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, acme, *got)
	assert.EqualValues(t, 1, calls.Load(), "warm cache must not hit the remote service")
}

func TestAccessServiceWireContract(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.Header.Get("tenantId"))
		assert.Equal(t, "acme.s3cret", r.Header.Get("X-Api-Key"))
		_ = json.NewEncoder(w).Encode(tenant.Tenant{ID: "acme"})
	}))
	defer srv.Close()

	svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource("s3cret"),
		tenant.WithBaseURL(srv.URL))

	_, err := svc.GetTenant(context.Background(), "acme")
	require.NoError(t, err)
}

func TestAccessServiceRemoteMiss(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tenants := newTenantCache()
	svc := tenant.NewAccessService(tenants, secrets.StaticSource("s3cret"),
		tenant.WithBaseURL(srv.URL))

	ctx := context.Background()

	_, err := svc.GetTenant(ctx, "ghost")
	require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	assert.True(t, tenant.IsFunctional(err))
	assert.Contains(t, err.Error(), "ghost", "functional error names the identifier")

	_, ok, cacheErr := tenants.Get(ctx, tenants.Key("ghost"))
	require.NoError(t, cacheErr)
	assert.False(t, ok, "a remote miss must not populate the cache")
}

func TestAccessServiceRemoteFailure(t *testing.T) {
	t.Parallel()

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		tenants := newTenantCache()
		svc := tenant.NewAccessService(tenants, secrets.StaticSource("s3cret"),
			tenant.WithBaseURL(srv.URL))

		_, err := svc.GetTenant(context.Background(), "acme")
		require.ErrorIs(t, err, tenant.ErrTechnical)
		assert.False(t, tenant.IsFunctional(err))

		_, ok, cacheErr := tenants.Get(context.Background(), tenants.Key("acme"))
		require.NoError(t, cacheErr)
		assert.False(t, ok, "a technical failure must not populate the cache")
	})

	t.Run("timeout surfaces as technical failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource("s3cret"),
			tenant.WithBaseURL(srv.URL),
			tenant.WithRequestTimeout(20*time.Millisecond))

		_, err := svc.GetTenant(context.Background(), "acme")
		require.ErrorIs(t, err, tenant.ErrTechnical)
	})

	t.Run("secret store failure", func(t *testing.T) {
		t.Parallel()

		svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource(""),
			tenant.WithBaseURL("http://unreachable.invalid"))

		_, err := svc.GetTenant(context.Background(), "acme")
		require.ErrorIs(t, err, tenant.ErrTechnical)
	})
}

func TestAccessServiceIdentifierFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(tenant.Tenant{ID: "acme"})
	}))
	// Parallel subtests outlive this function body; Cleanup keeps the
	// server alive until they finish.
	t.Cleanup(srv.Close)

	svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource("s3cret"),
		tenant.WithBaseURL(srv.URL))

	t.Run("missing identifier fails functionally", func(t *testing.T) {
		t.Parallel()

		_, err := svc.GetTenant(context.Background(), "")
		require.ErrorIs(t, err, tenant.ErrMissingTenantID)
		assert.True(t, tenant.IsFunctional(err))
	})

	t.Run("identifier from context", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentifier(context.Background(), "acme")
		got, err := svc.GetTenant(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "acme", got.ID)
	})
}

func TestAccessServiceCurrentTenant(t *testing.T) {
	t.Parallel()

	svc := tenant.NewAccessService(newTenantCache(), secrets.StaticSource("s3cret"))

	resolved := &tenant.Tenant{ID: "acme"}
	got, err := svc.CurrentTenant(tenant.WithTenant(context.Background(), resolved))
	require.NoError(t, err)
	assert.Same(t, resolved, got, "an already-resolved tenant is reused without lookups")

	_, err = svc.CurrentTenant(context.Background())
	require.ErrorIs(t, err, tenant.ErrMissingTenantID)
}
