package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-teams/internal/api/handler"
	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/config"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/resolve"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(cat *catalog.Catalog, reg *provider.Registry, res *resolve.Resolver, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(cat, reg, res, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", h.ListLeagues)
		r.Get("/leagues/{league}", h.GetLeague)
		r.Get("/leagues/{league}/logo", h.GetLeagueLogo)
		r.Get("/leagues/{league}/teams/{team}", h.ResolveTeam)

		r.Get("/providers", h.GetProviders)
		r.Post("/cache/clear", h.ClearCaches)
	})

	return r
}
