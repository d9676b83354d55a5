package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cloudforge/tenantcore/pkg/cache"
	"github.com/cloudforge/tenantcore/pkg/secrets"
)

// APIKeyHeader carries the service-to-service credential on inter-service
// calls.
const APIKeyHeader = "X-Api-Key"

// DefaultRequestTimeout bounds the remote tenant fetch so a wedged tenant
// service surfaces as a technical failure instead of a hang.
const DefaultRequestTimeout = 10 * time.Second

// SecretSource yields the shared service-to-service secret. Satisfied by
// secrets.EnvSource and secrets.StaticSource.
type SecretSource interface {
	ServiceSecret(ctx context.Context) (string, error)
}

// CredentialFunc builds the inter-service credential for a tenant. The
// default combines the tenant ID with the shared secret as
// "{tenantId}.{secret}"; deployments may swap in a derived-secret or
// signed-token scheme as long as the receiving side verifies the same
// value.
type CredentialFunc func(ctx context.Context, tenantID string) (string, error)

// AccessService resolves the authoritative Tenant for a call using a
// read-through, write-through cache in front of the owning tenant service.
// The remote service is only consulted on a cold cache or after an
// eviction; subsequent reads are served locally until the entry expires or
// an invalidation message clears it.
type AccessService struct {
	cache      *cache.Service[Tenant]
	credential CredentialFunc
	client     *http.Client
	baseURL    string
	timeout    time.Duration
	fallback   func(ctx context.Context) (string, bool)
	log        *slog.Logger
}

// AccessOption configures an AccessService.
type AccessOption func(*AccessService)

// WithBaseURL sets the base URL of the owning tenant service.
func WithBaseURL(baseURL string) AccessOption {
	return func(s *AccessService) { s.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client used for remote lookups.
func WithHTTPClient(client *http.Client) AccessOption {
	return func(s *AccessService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithRequestTimeout bounds each remote lookup. Non-positive values are
// ignored.
func WithRequestTimeout(timeout time.Duration) AccessOption {
	return func(s *AccessService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithCredentialFunc replaces the default credential scheme.
func WithCredentialFunc(fn CredentialFunc) AccessOption {
	return func(s *AccessService) {
		if fn != nil {
			s.credential = fn
		}
	}
}

// WithIdentifierFallback replaces the source used when GetTenant is called
// without an explicit identifier. The default reads the identifier the
// middleware attached to the context.
func WithIdentifierFallback(fn func(ctx context.Context) (string, bool)) AccessOption {
	return func(s *AccessService) {
		if fn != nil {
			s.fallback = fn
		}
	}
}

// WithAccessLogger sets the logger for remote-lookup diagnostics.
func WithAccessLogger(log *slog.Logger) AccessOption {
	return func(s *AccessService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewAccessService creates the cached tenant lookup. source yields the
// shared secret for the default credential scheme; pass a custom
// CredentialFunc via options to use another scheme.
func NewAccessService(c *cache.Service[Tenant], source SecretSource, opts ...AccessOption) *AccessService {
	s := &AccessService{
		cache:    c,
		client:   &http.Client{},
		timeout:  DefaultRequestTimeout,
		fallback: IdentifierFromContext,
		log:      slog.Default(),
	}
	s.credential = func(ctx context.Context, tenantID string) (string, error) {
		secret, err := source.ServiceSecret(ctx)
		if err != nil {
			return "", err
		}
		return secrets.Credential(tenantID, secret), nil
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTenant resolves the tenant for identifier. An empty identifier falls
// back to the value attached to the context by the middleware.
//
// Functional failures (no identifier, tenant unknown) return *Error values
// matching ErrMissingTenantID and ErrTenantNotFound. Everything else
// (secret store, network, serialization, unexpected status, cache store)
// returns the technical kind and leaves the cache untouched.
func (s *AccessService) GetTenant(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		id, ok := s.fallback(ctx)
		if !ok || id == "" {
			return nil, ErrMissingTenantID
		}
		identifier = id
	}

	key := s.cache.Key(identifier)
	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrDecodeEntry) {
		// A broken store is infrastructure trouble; an undecodable entry
		// was already purged and is just a miss.
		return nil, Technical("tenant cache read failed", err)
	}
	if hit {
		return &cached, nil
	}

	t, err := s.fetchRemote(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// Write-through before returning so the next call is a local hit.
	if err := s.cache.Update(ctx, key, *t); err != nil {
		return nil, Technical("tenant cache write failed", err)
	}

	return t, nil
}

// CurrentTenant resolves the tenant for the ambient call context. Used by
// tenant-scoped repositories that have no explicit identifier.
func (s *AccessService) CurrentTenant(ctx context.Context) (*Tenant, error) {
	if t, ok := FromContext(ctx); ok && t != nil {
		return t, nil
	}
	return s.GetTenant(ctx, "")
}

func (s *AccessService) fetchRemote(ctx context.Context, identifier string) (*Tenant, error) {
	credential, err := s.credential(ctx, identifier)
	if err != nil {
		return nil, Technical("failed to obtain service credential", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/Tenant/%s", s.baseURL, url.PathEscape(identifier))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, Technical("failed to build tenant lookup request", err)
	}
	req.Header.Set(DefaultTenantHeader, identifier)
	req.Header.Set(APIKeyHeader, credential)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.ErrorContext(ctx, "tenant lookup request failed",
			slog.String("tenant_id", identifier), slog.Any("error", err))
		return nil, Technical("tenant lookup request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, NotFound(identifier)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.log.ErrorContext(ctx, "tenant lookup returned unexpected status",
			slog.String("tenant_id", identifier),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return nil, Technical(fmt.Sprintf("tenant lookup returned status %d", resp.StatusCode), nil)
	}

	var t Tenant
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, Technical("failed to decode tenant response", err)
	}
	return &t, nil
}
