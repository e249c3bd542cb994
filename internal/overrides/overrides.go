// Package overrides holds manually curated team data: per-team field
// overrides, search aliases, and fully custom teams that exist in no
// provider. Loaded once from the embedded teams.json and read-only after.
package overrides

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/albapepper/scoracle-teams/internal/match"
	"github.com/albapepper/scoracle-teams/internal/provider"
)

//go:embed teams.json
var teamsJSON []byte

// Override is the set of curated fields merged over provider data.
type Override struct {
	Name           string `json:"name,omitempty"`
	FullName       string `json:"fullName,omitempty"`
	City           string `json:"city,omitempty"`
	Abbreviation   string `json:"abbreviation,omitempty"`
	Logo           string `json:"logo,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	LogoAlt        string `json:"logoAlt,omitempty"`
	Color          string `json:"color,omitempty"`
	AlternateColor string `json:"alternateColor,omitempty"`
}

// Entry is one curated team: optional overrides, search aliases, and a flag
// marking teams that only exist here.
type Entry struct {
	Custom   bool      `json:"custom,omitempty"`
	Override *Override `json:"override,omitempty"`
	Aliases  []string  `json:"aliases,omitempty"`
}

// Store is the lookup table over all curated teams, keyed by normalized
// league key then team slug.
type Store struct {
	leagues map[string]map[string]*Entry
}

// Load parses the embedded override table.
func Load() (*Store, error) {
	return Parse(teamsJSON)
}

// Parse builds a store from raw JSON.
func Parse(data []byte) (*Store, error) {
	var raw map[string]map[string]*Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse team overrides: %w", err)
	}
	s := &Store{leagues: make(map[string]map[string]*Entry, len(raw))}
	for league, teams := range raw {
		s.leagues[strings.ToLower(league)] = teams
	}
	return s, nil
}

// NewStore builds an empty store, useful in tests.
func NewStore() *Store {
	return &Store{leagues: make(map[string]map[string]*Entry)}
}

func (s *Store) league(key string) map[string]*Entry {
	return s.leagues[strings.ToLower(key)]
}

// Aliases returns the curated aliases for a team slug in a league.
func (s *Store) Aliases(leagueKey, slug string) []string {
	if e, ok := s.league(leagueKey)[slug]; ok {
		return e.Aliases
	}
	return nil
}

// AliasMatches reports whether the input matches any curated alias for the
// team slug. Aliases are checked across every league, so a feeder or
// fallback league still honors aliases defined for the originally requested
// one. Matching uses compact normalization.
func (s *Store) AliasMatches(input, slug string) bool {
	compact := match.Compact(input)
	if compact == "" || slug == "" {
		return false
	}
	for _, teams := range s.leagues {
		e, ok := teams[slug]
		if !ok {
			continue
		}
		for _, alias := range e.Aliases {
			if match.Compact(alias) == compact {
				return true
			}
		}
	}
	return false
}

// MatchScore scores input against a candidate, preferring a curated
// abbreviation override at full weight and the provider's own fields at 90%.
func (s *Store) MatchScore(input string, c match.Candidate, slug, leagueKey string) float64 {
	var best float64
	if e, ok := s.league(leagueKey)[slug]; ok && e.Override != nil && e.Override.Abbreviation != "" {
		if match.Compact(input) == match.Compact(e.Override.Abbreviation) {
			best = match.ExactAbbreviationScore
		}
	}
	return max(best, match.Score(input, c)*0.9)
}

// Apply merges curated override fields over a provider-resolved team.
// The input team is not mutated.
func (s *Store) Apply(team *provider.Team, leagueKey, slug string) *provider.Team {
	e, ok := s.league(leagueKey)[slug]
	if !ok || e.Override == nil {
		return team
	}
	merged := *team
	o := e.Override
	if o.Name != "" {
		merged.Name = o.Name
	}
	if o.FullName != "" {
		merged.FullName = o.FullName
	}
	if o.City != "" {
		merged.City = o.City
	}
	if o.Abbreviation != "" {
		merged.Abbreviation = o.Abbreviation
	}
	if logo := firstNonEmpty(o.Logo, o.LogoURL); logo != "" {
		merged.Logo = logo
	}
	if o.LogoAlt != "" {
		merged.LogoAlt = o.LogoAlt
	}
	if o.Color != "" {
		merged.Color = o.Color
	}
	if o.AlternateColor != "" {
		merged.AlternateColor = o.AlternateColor
	}
	return &merged
}

// CustomTeam resolves a curated custom team under a league. The identifier
// is tried four ways, in priority order: curated alias match, lowercased
// exact key, as-typed exact key, then fully-normalized key. Returns false
// for entries that are overrides of provider teams rather than custom ones.
func (s *Store) CustomTeam(leagueKey, identifier string) (*provider.Team, bool) {
	teams := s.league(leagueKey)
	if len(teams) == 0 {
		return nil, false
	}

	if slug, ok := s.customSlugByAlias(teams, identifier); ok {
		return s.buildCustomTeam(teams, slug)
	}
	for _, key := range []string{strings.ToLower(identifier), identifier, match.Compact(identifier)} {
		if e, ok := teams[key]; ok && e.Custom {
			return s.buildCustomTeam(teams, key)
		}
	}
	return nil, false
}

func (s *Store) customSlugByAlias(teams map[string]*Entry, identifier string) (string, bool) {
	compact := match.Compact(identifier)
	for slug, e := range teams {
		if !e.Custom {
			continue
		}
		for _, alias := range e.Aliases {
			if match.Compact(alias) == compact {
				return slug, true
			}
		}
	}
	return "", false
}

func (s *Store) buildCustomTeam(teams map[string]*Entry, slug string) (*provider.Team, bool) {
	e := teams[slug]
	if e == nil || !e.Custom || e.Override == nil {
		return nil, false
	}
	o := e.Override
	team := &provider.Team{
		Slug:           slug,
		Name:           firstNonEmpty(o.Name, slug),
		FullName:       firstNonEmpty(o.FullName, o.Name, slug),
		City:           o.City,
		Abbreviation:   o.Abbreviation,
		Logo:           firstNonEmpty(o.Logo, o.LogoURL),
		LogoAlt:        o.LogoAlt,
		Color:          firstNonEmpty(o.Color, "#000000"),
		AlternateColor: firstNonEmpty(o.AlternateColor, "#FFFFFF"),
	}
	if team.Abbreviation == "" {
		abbrev := strings.ToUpper(match.Compact(slug))
		if len(abbrev) > 3 {
			abbrev = abbrev[:3]
		}
		team.Abbreviation = abbrev
	}
	return team, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
