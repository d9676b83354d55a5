package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cloudforge/tenantcore/pkg/tenant"
)

// tenantField is the document field holding the owning tenant's identity.
// It is injected by the base and never accepted from callers.
const tenantField = "tenant_id"

// Entity is a stored domain object addressable by its natural identity.
// The bson mapping of the implementing type must map the identity field to
// "_id".
type Entity interface {
	EntityID() string
}

// TenantAccessor resolves the tenant for the current call. Satisfied by
// tenant.AccessService; tests may plug a fixed accessor.
type TenantAccessor interface {
	CurrentTenant(ctx context.Context) (*tenant.Tenant, error)
}

// AccessorFunc adapts an ordinary function to the TenantAccessor interface.
type AccessorFunc func(ctx context.Context) (*tenant.Tenant, error)

// CurrentTenant calls the function.
func (f AccessorFunc) CurrentTenant(ctx context.Context) (*tenant.Tenant, error) {
	return f(ctx)
}

// Base is the generic tenant-scoped repository over a Mongo collection.
// Every operation resolves the tenant first and scopes the query to it;
// tenant-resolution failures propagate unchanged so the caller sees the
// functional error, not a masked storage error.
type Base[T Entity] struct {
	coll    *mongo.Collection
	tenants TenantAccessor
}

// NewBase creates a tenant-scoped repository over the named collection.
func NewBase[T Entity](db *mongo.Database, collection string, tenants TenantAccessor) *Base[T] {
	return &Base[T]{
		coll:    db.Collection(collection),
		tenants: tenants,
	}
}

// scope resolves the current tenant and returns a filter containing only
// the tenant clause; callers add their own conditions on top of the copy.
func (b *Base[T]) scope(ctx context.Context) (bson.M, error) {
	t, err := b.tenants.CurrentTenant(ctx)
	if err != nil {
		return nil, err
	}
	return bson.M{tenantField: t.ID}, nil
}

// ExistsByID reports whether a document with the given identity exists in
// the current tenant's scope.
func (b *Base[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	filter, err := b.scope(ctx)
	if err != nil {
		return false, err
	}
	filter["_id"] = id

	count, err := b.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrStorageFailure, err)
	}
	return count > 0, nil
}

// FindOne returns the first document matching filter within the current
// tenant's scope. The tenant clause overrides any caller-supplied value
// for the tenant field.
func (b *Base[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var out T

	scoped, err := b.scope(ctx)
	if err != nil {
		return out, err
	}
	for k, v := range filter {
		if k == tenantField {
			continue
		}
		scoped[k] = v
	}

	if err := b.coll.FindOne(ctx, scoped).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, ErrNotFound
		}
		return out, errors.Join(ErrStorageFailure, err)
	}
	return out, nil
}

// FindByID returns the document with the given identity within the current
// tenant's scope.
func (b *Base[T]) FindByID(ctx context.Context, id string) (T, error) {
	return b.FindOne(ctx, bson.M{"_id": id})
}

// Insert stores entity in the current tenant's scope. The tenant field is
// stamped from the resolved tenant, replacing anything the entity carried.
func (b *Base[T]) Insert(ctx context.Context, entity T) error {
	scoped, err := b.scope(ctx)
	if err != nil {
		return err
	}

	raw, err := bson.Marshal(entity)
	if err != nil {
		return errors.Join(ErrEncodeDocument, err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return errors.Join(ErrEncodeDocument, err)
	}
	doc[tenantField] = scoped[tenantField]

	if _, err := b.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

// UpdateFields applies a partial update ($set) to the identified document
// within the current tenant's scope. Returns ErrNotFound when the document
// does not exist for this tenant, so cross-tenant identities cannot be
// probed through updates.
func (b *Base[T]) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	filter, err := b.scope(ctx)
	if err != nil {
		return err
	}
	filter["_id"] = id

	delete(fields, tenantField)
	res, err := b.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
