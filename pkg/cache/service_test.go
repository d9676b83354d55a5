package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudforge/tenantcore/pkg/cache"
)

type testEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// fakeClock lets tests advance time past the TTL without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestServiceKey(t *testing.T) {
	t.Parallel()

	svc := cache.NewService[testEntity]("ApiKey", cache.NewMemoryStore())

	assert.Equal(t, "ApiKey_global.1", svc.Key("global.1"))
	assert.Equal(t, "ApiKey_global.1", svc.Key("global.1"), "key derivation must be deterministic")
	assert.Equal(t, "ApiKey", svc.EntityType())
}

func TestServiceGetAfterUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := cache.NewService[testEntity]("Entity", cache.NewMemoryStore())
	entity := testEntity{ID: "e1", Name: "first"}

	require.NoError(t, svc.Update(ctx, svc.Key("e1"), entity))

	got, ok, err := svc.Get(ctx, svc.Key("e1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity, got)
}

func TestServiceTTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	store := cache.NewMemoryStore()
	svc := cache.NewService[testEntity]("Entity", store,
		cache.WithExpireMinutes[testEntity](30),
		cache.WithClock[testEntity](clock.Now))

	require.NoError(t, svc.Update(ctx, svc.Key("e1"), testEntity{ID: "e1"}))

	// Just inside the TTL window.
	clock.Advance(29 * time.Minute)
	_, ok, err := svc.Get(ctx, svc.Key("e1"))
	require.NoError(t, err)
	assert.True(t, ok)

	// Past the TTL the entry is a miss even though nothing cleared it.
	clock.Advance(2 * time.Minute)
	_, ok, err = svc.Get(ctx, svc.Key("e1"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Lazy eviction removed the stale bytes from the store.
	_, present, err := store.Get(ctx, svc.Key("e1"))
	require.NoError(t, err)
	assert.False(t, present)
}

func TestServiceUpdateOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := cache.NewService[testEntity]("Entity", cache.NewMemoryStore())
	key := svc.Key("e1")

	require.NoError(t, svc.Update(ctx, key, testEntity{ID: "e1", Name: "old"}))
	require.NoError(t, svc.Update(ctx, key, testEntity{ID: "e1", Name: "new"}))

	got, ok, err := svc.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Name, "entries are replaced wholesale, last write wins")
}

func TestServiceClearIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := cache.NewService[testEntity]("Entity", cache.NewMemoryStore())
	key := svc.Key("e1")

	// Clearing an absent key is a no-op, not an error.
	require.NoError(t, svc.Clear(ctx, key))

	require.NoError(t, svc.Update(ctx, key, testEntity{ID: "e1"}))
	require.NoError(t, svc.Clear(ctx, key))
	require.NoError(t, svc.Clear(ctx, key))

	_, ok, err := svc.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServicePurgesUndecodableEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := cache.NewService[testEntity]("Entity", store)
	key := svc.Key("e1")

	require.NoError(t, store.Set(ctx, key, []byte("not json"), 0))

	_, ok, err := svc.Get(ctx, key)
	assert.False(t, ok)
	assert.ErrorIs(t, err, cache.ErrDecodeEntry)

	_, present, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, present, "undecodable bytes must be purged")
}

func TestEntryFresh(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	entry := cache.Entry[testEntity]{
		CreationTimestamp:   now.Unix(),
		ExpireTimeInMinutes: 30,
	}

	assert.True(t, entry.Fresh(now))
	assert.True(t, entry.Fresh(now.Add(29*time.Minute+59*time.Second)))
	assert.False(t, entry.Fresh(now.Add(30*time.Minute)))

	zeroTTL := cache.Entry[testEntity]{CreationTimestamp: now.Unix()}
	assert.False(t, zeroTTL.Fresh(now), "non-positive TTL is never fresh")
}
