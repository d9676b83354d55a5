package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Service caches values of a single entity type with TTL semantics on top of
// a Store. All methods are safe for concurrent use as long as the store
// provides atomic per-key operations.
type Service[T any] struct {
	entityType    string
	store         Store
	expireMinutes int
	now           func() time.Time
	log           *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption[T any] func(*Service[T])

// WithExpireMinutes overrides the default entry TTL. Non-positive values are
// ignored.
func WithExpireMinutes[T any](minutes int) ServiceOption[T] {
	return func(s *Service[T]) {
		if minutes > 0 {
			s.expireMinutes = minutes
		}
	}
}

// WithClock overrides the time source. Intended for tests that need to
// advance time past the TTL without sleeping.
func WithClock[T any](now func() time.Time) ServiceOption[T] {
	return func(s *Service[T]) {
		if now != nil {
			s.now = now
		}
	}
}

// WithServiceLogger sets the logger used for lazy-eviction diagnostics.
func WithServiceLogger[T any](log *slog.Logger) ServiceOption[T] {
	return func(s *Service[T]) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a cache service for one entity type. The entityType is
// the well-known constant for the cached entity (e.g. "Tenant", "ApiKey")
// and participates in key derivation, so two services caching different
// types never collide in the shared store.
func NewService[T any](entityType string, store Store, opts ...ServiceOption[T]) *Service[T] {
	s := &Service[T]{
		entityType:    entityType,
		store:         store,
		expireMinutes: DefaultExpireMinutes,
		now:           time.Now,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EntityType returns the well-known entity type constant for this service.
func (s *Service[T]) EntityType() string {
	return s.entityType
}

// Key derives the deterministic cache key for the given entity identity.
// The same (type, id) pair always yields the same key, so two entries for
// one entity can never coexist under different keys.
func (s *Service[T]) Key(id string) string {
	return s.entityType + "_" + id
}

// Get reads the entry stored under key. A stale entry is treated as absent
// and deleted from the store so the next reader does not pay the decode
// again. Never returns stale data.
func (s *Service[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return zero, false, errors.Join(ErrStoreFailure, err)
	}
	if !ok {
		return zero, false, nil
	}

	var entry Entry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Undecodable bytes are as useless as stale ones; purge and miss.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.WarnContext(ctx, "failed to purge undecodable cache entry",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return zero, false, errors.Join(ErrDecodeEntry, err)
	}

	if !entry.Fresh(s.now()) {
		// Lazy eviction. A delete failure only means the entry lingers
		// until the store's own TTL hint fires, so it is not surfaced.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.WarnContext(ctx, "failed to evict stale cache entry",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return zero, false, nil
	}

	return entry.Data, true, nil
}

// Update wraps data in a fresh entry stamped with the current time and
// overwrites whatever is stored under key. There is no compare-and-swap:
// the last write to complete wins, which is the documented consistency
// model for invalidation-driven updates.
func (s *Service[T]) Update(ctx context.Context, key string, data T) error {
	entry := Entry[T]{
		Data:                data,
		CreationTimestamp:   s.now().Unix(),
		ExpireTimeInMinutes: s.expireMinutes,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Join(ErrEncodeEntry, err)
	}

	// The store-level TTL runs slightly longer than the entry TTL so a
	// fresh-by-entry value is never missing from the store.
	ttlHint := time.Duration(s.expireMinutes+1) * time.Minute
	if err := s.store.Set(ctx, key, raw, ttlHint); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Clear deletes the entry under key. Clearing an absent key is a no-op.
func (s *Service[T]) Clear(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
