// Package espn implements the provider contract against the ESPN site API.
package espn

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/match"
	"github.com/albapepper/scoracle-teams/internal/overrides"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/provider/upstream"
)

const (
	siteAPIBase = "https://site.api.espn.com/apis/site/v2/sports"
	coreAPIBase = "https://sports.core.api.espn.com/v2/sports"
	cdnLogoBase = "https://a.espncdn.com/i/teamlogos/leagues/500"
)

// leagueConfig is the per-league payload stored under the "espn" or
// "espnConfig" selector keys.
type leagueConfig struct {
	Sport string `json:"espnSport"`
	Slug  string `json:"espnSlug"`
}

// Config carries client tuning for the ESPN upstream.
type Config struct {
	RequestsPerMinute int
	Timeout           time.Duration
}

// Provider resolves teams against the ESPN site API.
type Provider struct {
	client    *upstream.Client
	cache     *cache.Cache
	sf        singleflight.Group
	catalog   *catalog.Catalog
	overrides *overrides.Store
	logger    *slog.Logger
}

// New creates the ESPN provider.
func New(cat *catalog.Catalog, ov *overrides.Store, cfg Config, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Provider{
		client:    upstream.New("espn", cfg.RequestsPerMinute, cfg.Timeout, logger),
		cache:     cache.New(true),
		catalog:   cat,
		overrides: ov,
		logger:    logger,
	}
}

func (p *Provider) ID() string { return "espn" }

// SupportedLeagues lists every catalog league carrying an ESPN selector.
func (p *Provider) SupportedLeagues() []string {
	var out []string
	for _, l := range p.catalog.All() {
		if _, ok := l.ProviderConfig("espn", "espnConfig"); ok {
			out = append(out, strings.ToLower(l.ShortName))
		}
	}
	return out
}

func (p *Provider) CanHandleLeague(league *catalog.League) bool {
	return provider.SupportsLeagueShortName(p, league)
}

func (p *Provider) ClearCache() { p.cache.Clear() }

func (p *Provider) config(league *catalog.League) (*leagueConfig, error) {
	raw, ok := league.ProviderConfig("espn", "espnConfig")
	if !ok {
		return nil, fmt.Errorf("league %s is missing ESPN configuration", league.ShortName)
	}
	var cfg leagueConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("league %s ESPN configuration: %w", league.ShortName, err)
	}
	return &cfg, nil
}

// --------------------------------------------------------------------------
// Wire shapes
// --------------------------------------------------------------------------

type logo struct {
	Href string   `json:"href"`
	Rel  []string `json:"rel"`
}

func pickLogo(logos []logo, variant string) string {
	for _, l := range logos {
		full, matched := false, false
		for _, rel := range l.Rel {
			if rel == "full" {
				full = true
			}
			if rel == variant {
				matched = true
			}
		}
		if full && matched {
			return l.Href
		}
	}
	return ""
}

type espnTeam struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Location         string `json:"location"`
	Nickname         string `json:"nickname"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Color            string `json:"color"`
	AlternateColor   string `json:"alternateColor"`
	Logos            []logo `json:"logos"`
}

type rosterEntry struct {
	Team espnTeam `json:"team"`
}

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []rosterEntry `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type leagueResponse struct {
	Logos []logo `json:"logos"`
}

// overrideSlug derives the key used for override lookup from an ESPN team,
// stripping a league prefix ("eng.nottm_forest" -> "nottm-forest").
func overrideSlug(t espnTeam) string {
	s := t.Slug
	if s == "" {
		s = t.ID
	}
	if i := strings.Index(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// --------------------------------------------------------------------------
// Provider operations
// --------------------------------------------------------------------------

func (p *Provider) ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*provider.Team, error) {
	if league == nil || identifier == "" {
		return nil, fmt.Errorf("both league and team identifier are required")
	}
	teams, err := p.fetchRoster(ctx, league)
	if err != nil {
		return nil, err
	}

	best, score := p.bestMatch(league, identifier, teams)
	if best == nil || score == 0 {
		return nil, provider.NewNotFoundError(identifier, league.ShortName, rosterSummaries(teams))
	}
	return p.standardize(league, best.Team), nil
}

// bestMatch prefers a curated alias hit, then the highest weighted score.
func (p *Provider) bestMatch(league *catalog.League, identifier string, teams []rosterEntry) (*rosterEntry, float64) {
	for i := range teams {
		if p.overrides.AliasMatches(identifier, overrideSlug(teams[i].Team)) {
			return &teams[i], 1000
		}
	}

	var best *rosterEntry
	var bestScore float64
	for i := range teams {
		t := teams[i].Team
		cand := match.Candidate{
			FullName:         t.DisplayName,
			ShortDisplayName: t.ShortDisplayName,
			Name:             t.Nickname,
			City:             t.Location,
			Abbreviation:     t.Abbreviation,
		}
		score := p.overrides.MatchScore(identifier, cand, overrideSlug(t), league.Key)
		if score > bestScore {
			bestScore = score
			best = &teams[i]
		}
	}
	return best, bestScore
}

func (p *Provider) standardize(league *catalog.League, t espnTeam) *provider.Team {
	defaultLogo := pickLogo(t.Logos, "default")
	if defaultLogo == "" && len(t.Logos) > 0 {
		defaultLogo = t.Logos[0].Href
	}

	color, alternate := "#000000", "#ffffff"
	if t.Color != "" {
		color = "#" + t.Color
	}
	if t.AlternateColor != "" {
		alternate = "#" + t.AlternateColor
	}

	team := &provider.Team{
		ID:             t.ID,
		Slug:           t.Slug,
		City:           t.Location,
		Name:           t.Nickname,
		FullName:       t.DisplayName,
		Abbreviation:   t.Abbreviation,
		Logo:           defaultLogo,
		LogoAlt:        pickLogo(t.Logos, "dark"),
		Color:          color,
		AlternateColor: alternate,
	}
	return p.overrides.Apply(team, league.Key, overrideSlug(t))
}

func rosterSummaries(teams []rosterEntry) []provider.TeamSummary {
	out := make([]provider.TeamSummary, 0, len(teams))
	for _, entry := range teams {
		t := entry.Team
		out = append(out, provider.TeamSummary{
			DisplayName:      t.DisplayName,
			ShortDisplayName: t.ShortDisplayName,
			Abbreviation:     t.Abbreviation,
			City:             t.Location,
			Nickname:         t.Nickname,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

func (p *Provider) LeagueLogoURL(ctx context.Context, league *catalog.League, darkPreferred bool) (string, error) {
	if _, err := p.config(league); err != nil {
		return "", err
	}
	if darkPreferred && league.LogoURLDark != "" {
		return league.LogoURLDark, nil
	}
	if league.LogoURL != "" {
		return league.LogoURL, nil
	}

	fallback := fmt.Sprintf("%s/%s.png", cdnLogoBase, strings.ToLower(league.ShortName))
	data, err := p.fetchLeagueData(ctx, league)
	if err != nil {
		p.logger.Warn("league logo fetch failed", "league", league.ShortName, "error", err)
		return fallback, nil
	}

	defaultLogo := pickLogo(data.Logos, "default")
	darkLogo := pickLogo(data.Logos, "dark")
	var url string
	if darkPreferred {
		url = firstNonEmpty(darkLogo, defaultLogo)
	} else {
		url = firstNonEmpty(defaultLogo, darkLogo)
	}
	return firstNonEmpty(url, fallback), nil
}

// --------------------------------------------------------------------------
// Upstream fetches
// --------------------------------------------------------------------------

func (p *Provider) fetchRoster(ctx context.Context, league *catalog.League) ([]rosterEntry, error) {
	key := "roster_" + league.Key
	if v, ok := p.cache.Get(key); ok {
		return v.([]rosterEntry), nil
	}

	v, err, _ := p.sf.Do(key, func() (any, error) {
		if v, ok := p.cache.Get(key); ok {
			return v, nil
		}
		cfg, err := p.config(league)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("%s/%s/%s/teams?limit=1000", siteAPIBase, cfg.Sport, cfg.Slug)
		var resp teamsResponse
		if err := p.client.GetJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		var teams []rosterEntry
		if len(resp.Sports) > 0 && len(resp.Sports[0].Leagues) > 0 {
			teams = resp.Sports[0].Leagues[0].Teams
		}
		p.cache.Set(key, teams, cache.TTLRoster)
		return teams, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]rosterEntry), nil
}

func (p *Provider) fetchLeagueData(ctx context.Context, league *catalog.League) (*leagueResponse, error) {
	key := "league_" + league.Key
	if v, ok := p.cache.Get(key); ok {
		return v.(*leagueResponse), nil
	}

	v, err, _ := p.sf.Do(key, func() (any, error) {
		if v, ok := p.cache.Get(key); ok {
			return v, nil
		}
		cfg, err := p.config(league)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("%s/%s/leagues/%s", coreAPIBase, cfg.Sport, cfg.Slug)
		var resp leagueResponse
		if err := p.client.GetJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		p.cache.Set(key, &resp, cache.TTLLeagueData)
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*leagueResponse), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
