// Package sportsdb implements the provider contract against TheSportsDB API.
package sportsdb

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

const apiBase = "https://www.thesportsdb.com/api/v1/json"

// freeTierKey is the public key TheSportsDB documents for development use.
const freeTierKey = "3"

type leagueConfig struct {
	LeagueID string `json:"leagueId"`
}

// Config carries the API key and client tuning.
type Config struct {
	APIKey            string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Provider resolves teams against TheSportsDB.
type Provider struct {
	client    *upstream.Client
	cache     *cache.Cache
	sf        singleflight.Group
	catalog   *catalog.Catalog
	overrides *overrides.Store
	apiKey    string
	logger    *slog.Logger
}

// New creates the TheSportsDB provider.
func New(cat *catalog.Catalog, ov *overrides.Store, cfg Config, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		cfg.APIKey = freeTierKey
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Provider{
		client:    upstream.New("thesportsdb", cfg.RequestsPerMinute, cfg.Timeout, logger),
		cache:     cache.New(true),
		catalog:   cat,
		overrides: ov,
		apiKey:    cfg.APIKey,
		logger:    logger,
	}
}

func (p *Provider) ID() string { return "thesportsdb" }

func (p *Provider) SupportedLeagues() []string {
	var out []string
	for _, l := range p.catalog.All() {
		if _, ok := l.ProviderConfig("thesportsdb", "theSportsDBConfig"); ok {
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
	raw, ok := league.ProviderConfig("thesportsdb", "theSportsDBConfig")
	if !ok {
		return nil, fmt.Errorf("league %s is missing TheSportsDB configuration", league.ShortName)
	}
	var cfg leagueConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("league %s TheSportsDB configuration: %w", league.ShortName, err)
	}
	if cfg.LeagueID == "" {
		return nil, fmt.Errorf("league %s TheSportsDB configuration has no leagueId", league.ShortName)
	}
	return &cfg, nil
}

// --------------------------------------------------------------------------
// Wire shapes
// --------------------------------------------------------------------------

type sdbTeam struct {
	ID            string `json:"idTeam"`
	Name          string `json:"strTeam"`
	ShortName     string `json:"strTeamShort"`
	Alternate     string `json:"strTeamAlternate"`
	Location      string `json:"strLocation"`
	Badge         string `json:"strBadge"`
	Logo          string `json:"strLogo"`
	Color1        string `json:"strColour1"`
	Color2        string `json:"strColour2"`
	Keywords      string `json:"strKeywords"`
	Stadium       string `json:"strStadium"`
	LeagueID      string `json:"idLeague"`
	FormedYear    string `json:"intFormedYear"`
	Sport         string `json:"strSport"`
	Country       string `json:"strCountry"`
	Description   string `json:"strDescriptionEN"`
	BadgeURLSmall string `json:"strTeamBadge"`
}

type teamsResponse struct {
	Teams []sdbTeam `json:"teams"`
}

type sdbLeague struct {
	ID     string `json:"idLeague"`
	Badge  string `json:"strBadge"`
	Logo   string `json:"strLogo"`
	Banner string `json:"strBanner"`
}

type leagueResponse struct {
	Leagues []sdbLeague `json:"leagues"`
}

func teamSlug(t sdbTeam) string {
	return match.Slug(t.Name)
}

// --------------------------------------------------------------------------
// Provider operations
// --------------------------------------------------------------------------

func (p *Provider) ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*provider.Team, error) {
	if league == nil || identifier == "" {
		return nil, fmt.Errorf("both league and team identifier are required")
	}
	teams, err := p.fetchTeams(ctx, league)
	if err != nil {
		return nil, err
	}

	best, score := p.bestMatch(league, identifier, teams)
	if best == nil || score == 0 {
		return nil, provider.NewNotFoundError(identifier, league.ShortName, teamSummaries(teams))
	}
	return p.standardize(league, *best), nil
}

func (p *Provider) bestMatch(league *catalog.League, identifier string, teams []sdbTeam) (*sdbTeam, float64) {
	for i := range teams {
		if p.overrides.AliasMatches(identifier, teamSlug(teams[i])) {
			return &teams[i], 1000
		}
	}

	var best *sdbTeam
	var bestScore float64
	for i := range teams {
		t := teams[i]
		city, nickname := splitName(t)
		cand := match.Candidate{
			FullName:         t.Name,
			ShortDisplayName: nickname,
			Name:             nickname,
			City:             city,
			Abbreviation:     t.ShortName,
		}
		score := p.overrides.MatchScore(identifier, cand, teamSlug(t), league.Key)

		// Alternate names count as full-name matches at a slight discount.
		for _, alt := range splitAlternates(t.Alternate) {
			altCand := cand
			altCand.FullName = alt
			if s := match.Score(identifier, altCand) * 0.95; s > score {
				score = s
			}
		}
		if score > bestScore {
			bestScore = score
			best = &teams[i]
		}
	}
	return best, bestScore
}

// splitName derives a city/nickname pair from a combined team name. The last
// word becomes the nickname, the rest the city. Single-word names keep the
// whole string as the nickname.
func splitName(t sdbTeam) (city, nickname string) {
	parts := strings.Fields(t.Name)
	if len(parts) < 2 {
		return "", t.Name
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

func splitAlternates(alternate string) []string {
	if alternate == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(alternate, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (p *Provider) standardize(league *catalog.League, t sdbTeam) *provider.Team {
	city, nickname := splitName(t)

	color, alternate := "#000000", "#ffffff"
	if t.Color1 != "" {
		color = normalizeColor(t.Color1)
	}
	if t.Color2 != "" {
		alternate = normalizeColor(t.Color2)
	}

	slug := teamSlug(t)
	team := &provider.Team{
		ID:             t.ID,
		Slug:           slug,
		City:           city,
		Name:           nickname,
		FullName:       t.Name,
		Abbreviation:   firstNonEmpty(t.ShortName, abbreviate(t.Name)),
		Logo:           firstNonEmpty(t.Badge, t.BadgeURLSmall, t.Logo),
		LogoAlt:        t.Logo,
		Color:          color,
		AlternateColor: alternate,
	}
	return p.overrides.Apply(team, league.Key, slug)
}

func normalizeColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

func abbreviate(name string) string {
	compact := strings.ToUpper(match.Compact(name))
	if len(compact) > 3 {
		compact = compact[:3]
	}
	return compact
}

func teamSummaries(teams []sdbTeam) []provider.TeamSummary {
	out := make([]provider.TeamSummary, 0, len(teams))
	for _, t := range teams {
		city, nickname := splitName(t)
		out = append(out, provider.TeamSummary{
			FullName:     t.Name,
			Name:         nickname,
			City:         city,
			Abbreviation: t.ShortName,
			Alternate:    t.Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (p *Provider) LeagueLogoURL(ctx context.Context, league *catalog.League, darkPreferred bool) (string, error) {
	cfg, err := p.config(league)
	if err != nil {
		return "", err
	}
	if darkPreferred && league.LogoURLDark != "" {
		return league.LogoURLDark, nil
	}
	if league.LogoURL != "" {
		return league.LogoURL, nil
	}

	key := "league_" + cfg.LeagueID
	if v, ok := p.cache.Get(key); ok {
		return v.(string), nil
	}
	url := fmt.Sprintf("%s/%s/lookupleague.php?id=%s", apiBase, p.apiKey, cfg.LeagueID)
	var resp leagueResponse
	if err := p.client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if len(resp.Leagues) == 0 {
		return "", fmt.Errorf("no league data for id %s", cfg.LeagueID)
	}
	logo := firstNonEmpty(resp.Leagues[0].Badge, resp.Leagues[0].Logo)
	if logo == "" {
		return "", fmt.Errorf("no logo available for league %s", league.ShortName)
	}
	p.cache.Set(key, logo, cache.TTLLeagueData)
	return logo, nil
}

// --------------------------------------------------------------------------
// Upstream fetches
// --------------------------------------------------------------------------

func (p *Provider) fetchTeams(ctx context.Context, league *catalog.League) ([]sdbTeam, error) {
	key := "teams_" + league.Key
	if v, ok := p.cache.Get(key); ok {
		return v.([]sdbTeam), nil
	}

	v, err, _ := p.sf.Do(key, func() (any, error) {
		if v, ok := p.cache.Get(key); ok {
			return v, nil
		}
		cfg, err := p.config(league)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("%s/%s/lookup_all_teams.php?id=%s", apiBase, p.apiKey, cfg.LeagueID)
		var resp teamsResponse
		if err := p.client.GetJSON(ctx, url, &resp); err != nil {
			return nil, err
		}
		p.cache.Set(key, resp.Teams, cache.TTLRoster)
		return resp.Teams, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]sdbTeam), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
