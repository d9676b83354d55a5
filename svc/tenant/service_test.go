package tenant_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudforge/tenantcore/pkg/cache"
	"github.com/cloudforge/tenantcore/pkg/invalidation"
	"github.com/cloudforge/tenantcore/pkg/tenant"
	tenantsvc "github.com/cloudforge/tenantcore/svc/tenant"
)

func newTenantCacheService() *cache.Service[tenant.Tenant] {
	return cache.NewService[tenant.Tenant](tenant.Topic, cache.NewMemoryStore())
}

type memoryStore struct {
	tenants map[string]*tenant.Tenant
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tenants: make(map[string]*tenant.Tenant)}
}

func (s *memoryStore) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	if t, ok := s.tenants[identifier]; ok {
		return t, nil
	}
	return nil, tenant.NotFound(identifier)
}

func (s *memoryStore) Save(ctx context.Context, t *tenant.Tenant) error {
	copied := *t
	s.tenants[t.ID] = &copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.tenants[id]; !ok {
		return tenant.NotFound(id)
	}
	delete(s.tenants, id)
	return nil
}

func receiveMessage(t *testing.T, ch <-chan invalidation.Delivery) invalidation.Message[tenant.Tenant] {
	t.Helper()

	select {
	case d := <-ch:
		defer d.Ack()
		var msg invalidation.Message[tenant.Tenant]
		require.NoError(t, json.Unmarshal(d.Body, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for invalidation message")
		return invalidation.Message[tenant.Tenant]{}
	}
}

func TestServiceSavePublishesModify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := invalidation.NewMemoryBus(4)
	defer func() { _ = bus.Close() }()

	deliveries, err := bus.Subscribe(ctx, tenant.Topic)
	require.NoError(t, err)

	store := newMemoryStore()
	svc := tenantsvc.NewService(store, bus, nil)

	acme := &tenant.Tenant{ID: "acme", Name: "Acme Corp"}
	require.NoError(t, svc.Save(ctx, acme))

	msg := receiveMessage(t, deliveries)
	assert.Equal(t, invalidation.TypeModify, msg.TopicType)
	assert.Equal(t, "acme", msg.TenantID)
	assert.Equal(t, "Acme Corp", msg.Data.Name, "modify carries the full entity")

	got, err := svc.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)
}

func TestServiceSaveMintsIdentity(t *testing.T) {
	t.Parallel()

	bus := invalidation.NewMemoryBus(4)
	defer func() { _ = bus.Close() }()

	svc := tenantsvc.NewService(newMemoryStore(), bus, nil)

	created := &tenant.Tenant{Name: "New Corp"}
	require.NoError(t, svc.Save(context.Background(), created))
	assert.NotEmpty(t, created.ID)
}

func TestServiceRemovePublishesRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := invalidation.NewMemoryBus(4)
	defer func() { _ = bus.Close() }()

	deliveries, err := bus.Subscribe(ctx, tenant.Topic)
	require.NoError(t, err)

	store := newMemoryStore()
	store.tenants["acme"] = &tenant.Tenant{ID: "acme", Name: "Acme Corp"}
	svc := tenantsvc.NewService(store, bus, nil)

	require.NoError(t, svc.Remove(ctx, "acme"))

	msg := receiveMessage(t, deliveries)
	assert.Equal(t, invalidation.TypeRemove, msg.TopicType)
	assert.Equal(t, "acme", msg.Data.ID, "remove carries the identity field")
	assert.Empty(t, msg.Data.Name, "other fields may be zero on remove")

	_, err = svc.Get(ctx, "acme")
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestServiceRemoveUnknownTenant(t *testing.T) {
	t.Parallel()

	bus := invalidation.NewMemoryBus(4)
	defer func() { _ = bus.Close() }()

	svc := tenantsvc.NewService(newMemoryStore(), bus, nil)
	err := svc.Remove(context.Background(), "ghost")
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestConvergenceAcrossInstances(t *testing.T) {
	t.Parallel()

	// End to end: a mutation at the owning service converges the cached
	// projection held by another instance.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := invalidation.NewMemoryBus(16)
	defer func() { _ = bus.Close() }()

	remoteCache := newTenantCacheService()
	dispatcher := invalidation.NewDispatcher(tenant.Topic, remoteCache,
		func(t tenant.Tenant) string { return t.ID })

	// Subscribe before the first Save so no message races the subscription.
	deliveries, err := bus.Subscribe(ctx, tenant.Topic)
	require.NoError(t, err)
	go func() { _ = dispatcher.Consume(ctx, deliveries) }()

	store := newMemoryStore()
	svc := tenantsvc.NewService(store, bus, nil)

	require.NoError(t, svc.Save(ctx, &tenant.Tenant{ID: "acme", Name: "v1"}))
	require.Eventually(t, func() bool {
		got, ok, err := remoteCache.Get(ctx, remoteCache.Key("acme"))
		return err == nil && ok && got.Name == "v1"
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, svc.Save(ctx, &tenant.Tenant{ID: "acme", Name: "v2"}))
	require.Eventually(t, func() bool {
		got, ok, err := remoteCache.Get(ctx, remoteCache.Key("acme"))
		return err == nil && ok && got.Name == "v2"
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, svc.Remove(ctx, "acme"))
	require.Eventually(t, func() bool {
		_, ok, err := remoteCache.Get(ctx, remoteCache.Key("acme"))
		return err == nil && !ok
	}, time.Second, 10*time.Millisecond)
}
