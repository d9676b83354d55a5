package tenant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cloudforge/tenantcore/pkg/invalidation"
	"github.com/cloudforge/tenantcore/pkg/tenant"
)

// Store is the persistence contract of the owning tenant service. The
// concrete implementation lives in the embedding application; this core
// only requires lookup and mutation primitives.
type Store interface {
	tenant.Provider

	// Save creates or replaces the tenant record.
	Save(ctx context.Context, t *tenant.Tenant) error

	// Delete removes the tenant record. Deleting an unknown id returns
	// tenant.ErrTenantNotFound.
	Delete(ctx context.Context, id string) error
}

// Service applies tenant mutations and broadcasts the matching
// invalidation messages so every remote cached projection converges.
type Service struct {
	store Store
	pub   *invalidation.Publisher[tenant.Tenant]
	log   *slog.Logger
}

// NewService creates the tenant mutation service publishing on bus.
func NewService(store Store, bus invalidation.Bus, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store: store,
		pub:   invalidation.NewPublisher[tenant.Tenant](tenant.Topic, bus),
		log:   log,
	}
}

// Get returns the tenant for id from the source of truth.
func (s *Service) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetByIdentifier(ctx, id)
}

// Save persists t, minting an identity when absent, and announces the
// change. The mutation is already durable when publishing runs; a publish
// failure is returned so the caller's transport can retry the broadcast,
// but remote caches converge via TTL expiry even if it never arrives.
func (s *Service) Save(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := s.store.Save(ctx, t); err != nil {
		return fmt.Errorf("save tenant %q: %w", t.ID, err)
	}

	if err := s.pub.Modify(ctx, t.ID, *t); err != nil {
		s.log.ErrorContext(ctx, "failed to publish tenant modify",
			slog.String("tenant_id", t.ID), slog.Any("error", err))
		return fmt.Errorf("tenant %q saved, publish failed: %w", t.ID, err)
	}
	return nil
}

// Remove deletes the tenant and announces the removal. The Remove message
// carries only the identity field, which is all dispatchers need to derive
// the cache key.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.pub.Remove(ctx, id, tenant.Tenant{ID: id}); err != nil {
		s.log.ErrorContext(ctx, "failed to publish tenant remove",
			slog.String("tenant_id", id), slog.Any("error", err))
		return fmt.Errorf("tenant %q removed, publish failed: %w", id, err)
	}
	return nil
}
