package resolve

import (
	"context"
	"errors"
	"sort"

	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/provider"
)

// impossibleIdentifier triggers a not-found failure from any provider; the
// attached roster is the cheapest way to learn a league's team list without
// a dedicated listing call on every provider.
const impossibleIdentifier = "__impossible_team_name_xyz__"

// collectFromVisited gathers every team name from every league the current
// resolution actually searched. Probe failures are swallowed; the list is
// whatever could be collected.
func (r *Resolver) collectFromVisited(ctx context.Context, sc *searchContext) []provider.TeamSummary {
	names := make(map[string]struct{})
	for _, league := range sc.visited {
		r.probeLeague(ctx, league, names)
	}
	return summariesFromNames(names)
}

// collectFromLeague gathers team names from a single league's providers.
func (r *Resolver) collectFromLeague(ctx context.Context, league *catalog.League) []provider.TeamSummary {
	names := make(map[string]struct{})
	r.probeLeague(ctx, league, names)
	return summariesFromNames(names)
}

func (r *Resolver) probeLeague(ctx context.Context, league *catalog.League, names map[string]struct{}) {
	for _, p := range r.registry.ProvidersFor(league) {
		_, probeErr := p.ResolveTeam(ctx, league, impossibleIdentifier)
		var nf *provider.NotFoundError
		if !errors.As(probeErr, &nf) {
			continue
		}
		for _, t := range nf.AvailableTeams {
			if label := t.Label(); label != "" {
				names[label] = struct{}{}
			}
		}
	}
}

func summariesFromNames(names map[string]struct{}) []provider.TeamSummary {
	if len(names) == 0 {
		return nil
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	out := make([]provider.TeamSummary, len(sorted))
	for i, name := range sorted {
		out[i] = provider.TeamSummary{Name: name}
	}
	return out
}

// enrichFromLeague rewrites a not-found error in place with the original
// league's full roster. The error keeps reporting the league the caller
// asked for even when resolution recursed elsewhere.
func (r *Resolver) enrichFromLeague(ctx context.Context, nf *provider.NotFoundError, original *catalog.League) {
	teams := r.collectFromLeague(ctx, original)
	if len(teams) == 0 {
		return
	}
	nf.League = original.ShortName
	nf.AvailableTeams = teams
}
