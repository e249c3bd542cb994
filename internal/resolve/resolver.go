// Package resolve implements team resolution across providers and leagues:
// provider priority within a league, feeder league traversal with cycle
// prevention, the legacy single-fallback path, and error enrichment with
// the teams that were actually searched.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/overrides"
	"github.com/albapepper/scoracle-teams/internal/provider"
)

// AlreadySearchedError reports a league reached twice within one resolution,
// which only happens on circular feeder or fallback references.
type AlreadySearchedError struct {
	LeagueKey string
}

func (e *AlreadySearchedError) Error() string {
	return fmt.Sprintf("already searched league: %s", e.LeagueKey)
}

// searchContext is the per-resolution state threaded through recursion.
// visited is keyed by league dedupe key; original is the league the caller
// asked for, used for error messaging at any recursion depth.
type searchContext struct {
	visited  map[string]*catalog.League
	original *catalog.League
}

func (sc *searchContext) seen(l *catalog.League) bool {
	_, ok := sc.visited[l.DedupeKey()]
	return ok
}

func (sc *searchContext) mark(l *catalog.League) {
	sc.visited[l.DedupeKey()] = l
}

// Resolver coordinates the catalog, the provider registry, and the curated
// override store.
type Resolver struct {
	catalog   *catalog.Catalog
	registry  *provider.Registry
	overrides *overrides.Store
	logger    *slog.Logger
}

// New creates a resolver.
func New(cat *catalog.Catalog, reg *provider.Registry, ov *overrides.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{catalog: cat, registry: reg, overrides: ov, logger: logger}
}

// FindLeague resolves a league identifier against the catalog, falling back
// to provider discovery for leagues that have no catalog entry.
func (r *Resolver) FindLeague(ctx context.Context, identifier string) (*catalog.League, error) {
	if l := r.catalog.Find(identifier); l != nil {
		return l, nil
	}
	disc, ok := r.registry.FindUnconfiguredLeague(ctx, identifier)
	if !ok {
		return nil, fmt.Errorf("unknown league: %s", identifier)
	}
	r.logger.Info("discovered unconfigured league",
		"identifier", identifier, "provider", disc.ProviderID, "sport", disc.Sport)
	return disc.League, nil
}

// ResolveTeam resolves a team identifier within a league, trying curated
// custom teams first, then each of the league's providers in priority order,
// then feeder leagues, then the legacy fallback league.
func (r *Resolver) ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*provider.Team, error) {
	if league == nil {
		return nil, fmt.Errorf("league is required")
	}
	if identifier == "" {
		return nil, fmt.Errorf("team identifier is required")
	}
	sc := &searchContext{
		visited:  make(map[string]*catalog.League),
		original: league,
	}
	return r.resolve(ctx, league, identifier, sc)
}

func (r *Resolver) resolve(ctx context.Context, league *catalog.League, identifier string, sc *searchContext) (*provider.Team, error) {
	if team, ok := r.overrides.CustomTeam(league.Key, identifier); ok {
		r.logger.Info("resolved curated custom team",
			"league", league.ShortName, "team", team.Name)
		return team, nil
	}

	if sc.seen(league) {
		return nil, &AlreadySearchedError{LeagueKey: league.DedupeKey()}
	}
	sc.mark(league)

	var lastErr error
	for _, p := range r.registry.ProvidersFor(league) {
		team, err := p.ResolveTeam(ctx, league, identifier)
		if err == nil {
			r.logger.Info("team resolved",
				"provider", p.ID(), "league", league.ShortName, "team", teamLabel(team))
			return team, nil
		}
		lastErr = err
	}

	if len(league.FeederLeagues) > 0 {
		return r.tryFeeders(ctx, league, identifier, sc, lastErr)
	}

	if league.FallbackLeague != "" {
		if fallback := r.catalog.Get(league.FallbackLeague); fallback != nil {
			team, fbErr := r.resolve(ctx, fallback, identifier, sc)
			if fbErr == nil {
				return team, nil
			}
			// The fallback failing enriches only with the original
			// league's teams; the fallback's roster is not shown.
			var nf *provider.NotFoundError
			if errors.As(lastErr, &nf) {
				r.enrichFromLeague(ctx, nf, sc.original)
			}
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, fbErr
		}
	}

	var nf *provider.NotFoundError
	if errors.As(lastErr, &nf) {
		r.enrichFromLeague(ctx, nf, sc.original)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed to resolve team: %s", identifier)
}

// tryFeeders walks the feeder leagues in order and builds the terminal error
// when all of them fail. Feeder errors never replace the original league's
// last error.
func (r *Resolver) tryFeeders(ctx context.Context, league *catalog.League, identifier string, sc *searchContext, lastErr error) (*provider.Team, error) {
	for _, feederKey := range league.FeederLeagues {
		feeder := r.catalog.Get(feederKey)
		if feeder == nil {
			r.logger.Warn("feeder league not found",
				"league", league.ShortName, "feeder", feederKey)
			continue
		}
		if sc.seen(feeder) {
			continue
		}
		if team, err := r.resolve(ctx, feeder, identifier, sc); err == nil {
			return team, nil
		}
	}

	var nf *provider.NotFoundError
	if errors.As(lastErr, &nf) {
		if teams := r.collectFromVisited(ctx, sc); len(teams) > 0 {
			return nil, provider.NewNotFoundError(identifier, sc.original.ShortName, teams)
		}
		return nil, lastErr
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("failed to resolve team: %s", identifier)
	}
	// Normalize non-not-found terminal errors so callers get a uniform
	// shape with the identifier and the originally requested league.
	return nil, &provider.NotFoundError{
		TeamIdentifier: identifier,
		League:         sc.original.ShortName,
		Cause:          lastErr,
	}
}

func teamLabel(t *provider.Team) string {
	if t.FullName != "" {
		return t.FullName
	}
	return t.Name
}

// LeagueLogoURL returns a logo for the league, preferring the static catalog
// URLs, then asking each configured provider in priority order.
func (r *Resolver) LeagueLogoURL(ctx context.Context, league *catalog.League, darkPreferred bool) (string, error) {
	if darkPreferred && league.LogoURLDark != "" {
		return league.LogoURLDark, nil
	}
	if league.LogoURL != "" {
		return league.LogoURL, nil
	}

	var lastErr error
	for _, p := range r.registry.ProvidersFor(league) {
		url, err := p.LeagueLogoURL(ctx, league, darkPreferred)
		if err == nil && url != "" {
			return url, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("no logo available for league %s", league.ShortName)
}
