package apikey

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/cloudforge/tenantcore/pkg/repository"
)

// Collection is the Mongo collection holding API keys.
const Collection = "api_keys"

// Repository is the tenant-scoped API key repository of the security
// service. All inherited operations are implicitly scoped to the tenant
// resolved for the current call.
type Repository struct {
	*repository.Base[ApiKey]
}

// NewRepository creates the API key repository.
func NewRepository(db *mongo.Database, tenants repository.TenantAccessor) *Repository {
	return &Repository{Base: repository.NewBase[ApiKey](db, Collection, tenants)}
}

// FindByName returns the key with the given display name within the
// current tenant's scope.
func (r *Repository) FindByName(ctx context.Context, name string) (ApiKey, error) {
	return r.FindOne(ctx, bson.M{"name": name})
}

// UpdateRoles replaces the role codes of the identified key without
// touching its other fields.
func (r *Repository) UpdateRoles(ctx context.Context, id string, roles []string) error {
	return r.UpdateFields(ctx, id, bson.M{"roles": roles})
}

// Rename updates the display name of the identified key.
func (r *Repository) Rename(ctx context.Context, id, name string) error {
	return r.UpdateFields(ctx, id, bson.M{"name": name})
}
