// Package ncaa implements the provider contract against the public NCAA.com
// teams and logo endpoints. It covers college sports ESPN does not, and it can
// recognize leagues that have no catalog entry yet.
package ncaa

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/match"
	"github.com/albapepper/scoracle-teams/internal/overrides"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/provider/upstream"
)

const (
	teamsAPIBase = "https://www.ncaa.com/json/teams"
	logoURLBase  = "https://www.ncaa.com/sites/default/files/images/logos/schools"
)

// sports is every NCAA.com sport code the teams pool aggregates.
var sports = []string{
	"volleyball-women",
	"basketball-men",
	"basketball-women",
	"football",
	"baseball",
	"softball",
	"soccer-men",
	"soccer-women",
}

var divisions = []string{"d1", "d2", "d3"}

// divisionRank orders divisions for dedupe: on a duplicate seoname the
// higher division wins.
var divisionRank = map[string]int{"d1": 0, "d2": 1, "d3": 2}

type leagueConfig struct {
	Sport    string `json:"sport"`
	Division string `json:"division"`
}

// Config carries client tuning for NCAA.com.
type Config struct {
	RequestsPerMinute int
	Timeout           time.Duration
}

// poolTeam is one school in the aggregated teams pool.
type poolTeam struct {
	Name     string
	SEOName  string
	Sport    string
	Division string
}

// Provider resolves college teams against NCAA.com.
type Provider struct {
	client    *upstream.Client
	cache     *cache.Cache
	sf        singleflight.Group
	catalog   *catalog.Catalog
	overrides *overrides.Store
	logger    *slog.Logger

	mu         sync.RWMutex
	pool       map[string]poolTeam
	poolExpiry time.Time
}

// New creates the NCAA provider.
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
		client:    upstream.New("ncaa", cfg.RequestsPerMinute, cfg.Timeout, logger),
		cache:     cache.New(true),
		catalog:   cat,
		overrides: ov,
		logger:    logger,
	}
}

func (p *Provider) ID() string { return "ncaa" }

func (p *Provider) SupportedLeagues() []string {
	var out []string
	for _, l := range p.catalog.All() {
		if _, ok := l.ProviderConfig("ncaa", "ncaaConfig"); ok {
			out = append(out, strings.ToLower(l.ShortName))
		}
	}
	return out
}

func (p *Provider) CanHandleLeague(league *catalog.League) bool {
	return provider.SupportsLeagueShortName(p, league)
}

func (p *Provider) ClearCache() {
	p.cache.Clear()
	p.mu.Lock()
	p.pool = nil
	p.poolExpiry = time.Time{}
	p.mu.Unlock()
}

// --------------------------------------------------------------------------
// Teams pool
// --------------------------------------------------------------------------

type teamsPage struct {
	Content []struct {
		Name    string `json:"name"`
		SEOName string `json:"seoname"`
	} `json:"content"`
}

// teamsPool returns the aggregated school pool, fetching every sport and
// division combination on first use. Individual page failures are tolerated;
// the pool is whatever could be fetched.
func (p *Provider) teamsPool(ctx context.Context) (map[string]poolTeam, error) {
	p.mu.RLock()
	if p.pool != nil && time.Now().Before(p.poolExpiry) {
		pool := p.pool
		p.mu.RUnlock()
		return pool, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.sf.Do("teams_pool", func() (any, error) {
		p.mu.RLock()
		if p.pool != nil && time.Now().Before(p.poolExpiry) {
			pool := p.pool
			p.mu.RUnlock()
			return pool, nil
		}
		p.mu.RUnlock()

		pool, err := p.fetchPool(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.pool = pool
		p.poolExpiry = time.Now().Add(cache.TTLRoster)
		p.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]poolTeam), nil
}

func (p *Provider) fetchPool(ctx context.Context) (map[string]poolTeam, error) {
	type page struct {
		sport    string
		division string
		teams    teamsPage
	}

	var mu sync.Mutex
	var pages []page
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(6)

	for _, sport := range sports {
		for _, division := range divisions {
			sport, division := sport, division
			g.Go(func() error {
				url := fmt.Sprintf("%s/%s/%s", teamsAPIBase, sport, division)
				var tp teamsPage
				if err := p.client.GetJSON(gctx, url, &tp); err != nil {
					p.logger.Warn("teams pool page failed",
						"sport", sport, "division", division, "error", err)
					return nil
				}
				mu.Lock()
				pages = append(pages, page{sport: sport, division: division, teams: tp})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool := make(map[string]poolTeam)
	for _, pg := range pages {
		for _, t := range pg.teams.Content {
			if t.SEOName == "" {
				continue
			}
			existing, ok := pool[t.SEOName]
			if ok && divisionRank[existing.Division] <= divisionRank[pg.division] {
				continue
			}
			pool[t.SEOName] = poolTeam{
				Name:     t.Name,
				SEOName:  t.SEOName,
				Sport:    pg.sport,
				Division: pg.division,
			}
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("teams pool is empty, every page fetch failed")
	}
	return pool, nil
}

// --------------------------------------------------------------------------
// Provider operations
// --------------------------------------------------------------------------

func (p *Provider) ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*provider.Team, error) {
	if league == nil || identifier == "" {
		return nil, fmt.Errorf("both league and team identifier are required")
	}

	pool, err := p.teamsPool(ctx)
	if err != nil {
		return nil, err
	}

	var slugs []string
	if matched := matchPool(identifier, pool); matched != "" {
		slugs = []string{matched}
	} else {
		slugs = schoolSlugs(identifier)
	}

	for _, slug := range slugs {
		lightURL, err := p.verifyLogo(ctx, slug, false)
		if err != nil {
			continue
		}
		darkURL := logoURL(slug, true)

		name := identifier
		if t, ok := pool[slug]; ok {
			name = t.Name
		}
		abbrev := strings.ToUpper(strings.ReplaceAll(slug, "-", ""))
		if len(abbrev) > 4 {
			abbrev = abbrev[:4]
		}
		team := &provider.Team{
			ID:             slug,
			Slug:           slug,
			Name:           name,
			FullName:       name,
			Abbreviation:   abbrev,
			Logo:           lightURL,
			LogoAlt:        darkURL,
			Color:          "#000000",
			AlternateColor: "#ffffff",
		}
		return p.overrides.Apply(team, league.Key, slug), nil
	}

	return nil, provider.NewNotFoundError(identifier, league.ShortName, p.summaries(league, pool))
}

// summaries lists the pool schools participating in the league's sport, or
// the whole pool when the league carries no NCAA configuration.
func (p *Provider) summaries(league *catalog.League, pool map[string]poolTeam) []provider.TeamSummary {
	sport := ""
	if raw, ok := league.ProviderConfig("ncaa", "ncaaConfig"); ok {
		var cfg leagueConfig
		if err := json.Unmarshal(raw, &cfg); err == nil {
			sport = cfg.Sport
		}
	}

	var out []provider.TeamSummary
	for _, t := range pool {
		if sport != "" && t.Sport != sport {
			continue
		}
		out = append(out, provider.TeamSummary{
			Name:     t.Name,
			FullName: t.Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// verifyLogo confirms the school logo exists by fetching it, caching the URL
// on success.
func (p *Provider) verifyLogo(ctx context.Context, slug string, dark bool) (string, error) {
	url := logoURL(slug, dark)
	key := "logo_" + slug + boolSuffix(dark)
	if v, ok := p.cache.Get(key); ok {
		return v.(string), nil
	}
	if _, err := p.client.GetBytes(ctx, url); err != nil {
		return "", err
	}
	p.cache.Set(key, url, cache.TTLLeagueData)
	return url, nil
}

func logoURL(slug string, dark bool) string {
	bg := "bgl"
	if dark {
		bg = "bgd"
	}
	return fmt.Sprintf("%s/%s/%s.svg", logoURLBase, bg, slug)
}

func boolSuffix(dark bool) string {
	if dark {
		return "_dark"
	}
	return "_light"
}

// LeagueLogoURL returns the static catalog logo; NCAA.com has no per-league
// logo endpoint.
func (p *Provider) LeagueLogoURL(ctx context.Context, league *catalog.League, darkPreferred bool) (string, error) {
	if darkPreferred && league.LogoURLDark != "" {
		return league.LogoURLDark, nil
	}
	if league.LogoURL != "" {
		return league.LogoURL, nil
	}
	return "", fmt.Errorf("no logo available for league %s", league.ShortName)
}

// --------------------------------------------------------------------------
// League discovery
// --------------------------------------------------------------------------

// CanHandleUnconfiguredLeague recognizes league identifiers shaped
// "ncaa<sport>", e.g. "ncaasoftball" or "ncaa-soccer-women".
func (p *Provider) CanHandleUnconfiguredLeague(ctx context.Context, identifier string) (bool, string) {
	sport, ok := sportFromIdentifier(identifier)
	if !ok {
		return false, ""
	}
	return true, sport
}

// UnconfiguredLeagueConfig synthesizes a catalog entry for a recognized but
// unconfigured NCAA league.
func (p *Provider) UnconfiguredLeagueConfig(ctx context.Context, identifier, sport string) (*catalog.League, error) {
	if sport == "" {
		s, ok := sportFromIdentifier(identifier)
		if !ok {
			return nil, fmt.Errorf("identifier %q does not name an NCAA sport", identifier)
		}
		sport = s
	}

	cfg, err := json.Marshal(leagueConfig{Sport: sport, Division: "d1"})
	if err != nil {
		return nil, err
	}
	short := "NCAA-" + strings.ToUpper(match.Compact(sport))
	return &catalog.League{
		Key:       strings.ToLower(identifier),
		Name:      "NCAA " + titleCase(sport),
		ShortName: short,
		Providers: []catalog.ProviderSelector{
			{ID: "ncaa", Config: map[string]json.RawMessage{"ncaaConfig": cfg}},
		},
	}, nil
}

// sportFromIdentifier maps "ncaa"-prefixed identifiers onto known sport
// codes, tolerating hyphens and word order ("ncaawomensoccer").
func sportFromIdentifier(identifier string) (string, bool) {
	compact := match.Compact(identifier)
	if !strings.HasPrefix(compact, "ncaa") {
		return "", false
	}
	rest := strings.TrimPrefix(compact, "ncaa")
	if rest == "" {
		return "", false
	}
	for _, sport := range sports {
		code := strings.ReplaceAll(sport, "-", "")
		if rest == code {
			return sport, true
		}
		// Tolerate reversed gender order: "womensoccer" for "soccer-women".
		parts := strings.Split(sport, "-")
		if len(parts) == 2 && rest == parts[1]+parts[0] {
			return sport, true
		}
	}
	return "", false
}

func titleCase(sport string) string {
	parts := strings.Split(sport, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
