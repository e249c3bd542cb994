// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the resolver directly — no service layer.
package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/scoracle-teams/internal/api/respond"
	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/config"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/resolve"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	catalog  *catalog.Catalog
	registry *provider.Registry
	resolver *resolve.Resolver
	cache    *cache.Cache
	cfg      *config.Config
}

// New creates a Handler with shared dependencies.
func New(cat *catalog.Catalog, reg *provider.Registry, res *resolve.Resolver, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		catalog:  cat,
		registry: reg,
		resolver: res,
		cache:    c,
		cfg:      cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available features.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Teams API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"features": []string{
			"multi_provider_resolution",
			"feeder_league_traversal",
			"curated_team_overrides",
			"league_auto_discovery",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"leagues":   h.catalog.Len(),
		"providers": len(h.registry.Providers()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ClearCaches drops the response cache and every provider cache.
// @Summary Clear caches
// @Description Clears the API response cache and all provider roster caches.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/cache/clear [post]
func (h *Handler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	h.registry.ClearAllCaches()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "cleared",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetProviders returns diagnostics for every registered provider.
// @Summary Provider info
// @Description Lists registered providers, their leagues, and discovery support.
// @Tags providers
// @Produce json
// @Success 200 {array} provider.Info
// @Router /api/v1/providers [get]
func (h *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"providers":        h.registry.ProviderInfo(),
		"supportedLeagues": h.registry.SupportedLeagues(),
	})
}
