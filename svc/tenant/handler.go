package tenant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudforge/tenantcore/pkg/secrets"
	"github.com/cloudforge/tenantcore/pkg/tenant"
)

// Handler serves the inter-service tenant lookup:
//
//	GET /Tenant/{tenantId}
//	  tenantId:  <id>
//	  X-Api-Key: {tenantId}.{secret}
//
// 200 returns the tenant JSON including the service key; 404 means the
// identifier is unknown. Callers map 404 to their functional not-found
// error. End clients never reach this endpoint.
type Handler struct {
	provider tenant.Provider
	source   secrets.Source
	log      *slog.Logger
}

// NewHandler creates the lookup handler.
func NewHandler(provider tenant.Provider, source secrets.Source, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{provider: provider, source: source, log: log}
}

// Handle returns the router exposing the lookup route.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/Tenant/{tenantId}", h.getTenant)
	return r
}

func (h *Handler) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "tenantId")

	// The id travels in the path, a dedicated header, and the credential;
	// all three must agree.
	if header := r.Header.Get(tenant.DefaultTenantHeader); header != "" && header != id {
		http.Error(w, "tenant header mismatch", http.StatusUnauthorized)
		return
	}

	secret, err := h.source.ServiceSecret(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "service secret unavailable", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !secrets.VerifyCredential(r.Header.Get(tenant.APIKeyHeader), id, secret) {
		http.Error(w, "invalid credential", http.StatusUnauthorized)
		return
	}

	t, err := h.provider.GetByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			http.Error(w, "tenant not found", http.StatusNotFound)
			return
		}
		h.log.ErrorContext(ctx, "tenant lookup failed",
			slog.String("tenant_id", id), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(t); err != nil {
		h.log.ErrorContext(ctx, "failed to encode tenant response", slog.Any("error", err))
	}
}
