package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/albapepper/scoracle-teams/internal/catalog"
)

// Registry holds every registered provider and the league->provider index.
// It is constructed explicitly and owned by the top-level service; after
// Initialize the internal maps are read-only, so lookups need no locking.
type Registry struct {
	logger *slog.Logger

	pending []Provider

	initOnce sync.Once
	byID     map[string]Provider
	order    []string            // provider ids in registration order
	byLeague map[string]Provider // league short name (lowercase) -> provider
}

// NewRegistry creates a registry over the given providers. Registration
// order is the argument order; when two providers declare the same league
// short name, the later one wins the implicit index.
func NewRegistry(logger *slog.Logger, providers ...Provider) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		pending:  providers,
		byID:     make(map[string]Provider),
		byLeague: make(map[string]Provider),
	}
}

// Initialize registers all providers exactly once. Safe to call from
// concurrent first users; re-entrant calls are no-ops.
func (r *Registry) Initialize() {
	r.initOnce.Do(func() {
		for _, p := range r.pending {
			if err := r.register(p); err != nil {
				r.logger.Warn("skipping provider registration", "error", err)
			}
		}
		r.pending = nil
	})
}

func (r *Registry) register(p Provider) error {
	id := strings.ToLower(strings.TrimSpace(p.ID()))
	if id == "" {
		return fmt.Errorf("provider with empty id")
	}
	if _, dup := r.byID[id]; dup {
		return fmt.Errorf("duplicate provider id %q", id)
	}
	r.byID[id] = p
	r.order = append(r.order, id)

	for _, league := range p.SupportedLeagues() {
		r.byLeague[strings.ToLower(league)] = p
	}
	r.logger.Debug("registered provider", "provider", id, "leagues", len(p.SupportedLeagues()))
	return nil
}

// Get returns a provider by id.
func (r *Registry) Get(id string) (Provider, bool) {
	r.Initialize()
	p, ok := r.byID[strings.ToLower(id)]
	return p, ok
}

// resolveSelector maps one configured selector entry to a registered
// provider id. Explicit providerId wins; otherwise config object key names
// are tried with a trailing "Config" suffix stripped.
func (r *Registry) resolveSelector(sel catalog.ProviderSelector) (Provider, bool) {
	if sel.ID != "" {
		p, ok := r.byID[sel.ID]
		return p, ok
	}
	for key := range sel.Config {
		name := strings.ToLower(strings.TrimSuffix(key, "Config"))
		if p, ok := r.byID[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// ProvidersFor returns every provider configured for the league, in the
// declared priority order. Selector entries that resolve to nothing are
// skipped. When no explicit entry resolves, the legacy single providerId
// field and then the implicit short-name index are consulted. A missing
// league is not an error; the result is simply empty.
func (r *Registry) ProvidersFor(league *catalog.League) []Provider {
	r.Initialize()

	var providers []Provider
	for _, sel := range league.Providers {
		if p, ok := r.resolveSelector(sel); ok {
			providers = append(providers, p)
		}
	}
	if len(providers) > 0 {
		return providers
	}

	if p, err := r.ProviderFor(league); err == nil {
		providers = append(providers, p)
	}
	return providers
}

// ProviderFor returns the single highest-priority provider for a league,
// using the legacy resolution paths: explicit providerId preference when the
// provider also claims the league, then the implicit short-name index.
func (r *Registry) ProviderFor(league *catalog.League) (Provider, error) {
	r.Initialize()

	for _, sel := range league.Providers {
		if p, ok := r.resolveSelector(sel); ok {
			return p, nil
		}
	}
	if league.ProviderID != "" {
		if p, ok := r.byID[strings.ToLower(league.ProviderID)]; ok && p.CanHandleLeague(league) {
			return p, nil
		}
	}
	if p, ok := r.byLeague[strings.ToLower(league.ShortName)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no provider available for league %q", league.ShortName)
}

// Discovery is the result of probing providers for a league that is absent
// from the static catalog.
type Discovery struct {
	ProviderID string
	Sport      string
	League     *catalog.League
}

// FindUnconfiguredLeague probes providers implementing Discoverer, in
// registration order, for one willing to handle the identifier.
func (r *Registry) FindUnconfiguredLeague(ctx context.Context, identifier string) (*Discovery, bool) {
	r.Initialize()

	for _, id := range r.order {
		d, ok := r.byID[id].(Discoverer)
		if !ok {
			continue
		}
		canHandle, sport := d.CanHandleUnconfiguredLeague(ctx, identifier)
		if !canHandle {
			continue
		}
		league, err := d.UnconfiguredLeagueConfig(ctx, identifier, sport)
		if err != nil {
			r.logger.Warn("unconfigured league config failed",
				"provider", id, "league", identifier, "error", err)
			continue
		}
		return &Discovery{ProviderID: id, Sport: sport, League: league}, true
	}
	return nil, false
}

// Providers returns all registered providers in registration order.
func (r *Registry) Providers() []Provider {
	r.Initialize()
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// SupportedLeagues returns the sorted set of league short names any provider
// declared support for.
func (r *Registry) SupportedLeagues() []string {
	r.Initialize()
	out := make([]string, 0, len(r.byLeague))
	for league := range r.byLeague {
		out = append(out, league)
	}
	sort.Strings(out)
	return out
}

// ClearAllCaches clears every provider's internal cache.
func (r *Registry) ClearAllCaches() {
	r.Initialize()
	for _, id := range r.order {
		r.byID[id].ClearCache()
	}
}

// Info describes one registered provider for diagnostics endpoints.
type Info struct {
	ID               string   `json:"id"`
	SupportedLeagues []string `json:"supportedLeagues"`
	Discovery        bool     `json:"discovery"`
}

// ProviderInfo returns diagnostics for every registered provider.
func (r *Registry) ProviderInfo() []Info {
	r.Initialize()
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		_, discovers := p.(Discoverer)
		out = append(out, Info{ID: id, SupportedLeagues: p.SupportedLeagues(), Discovery: discovers})
	}
	return out
}
