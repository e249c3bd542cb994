// Package provider defines the capability contract every sports data source
// implements, the canonical team shape they all normalize into, and the
// registry that routes a league to its configured providers.
//
// Adding a new data source means implementing Provider (and optionally
// Discoverer) and passing it to NewRegistry. The resolver core never changes.
package provider

import (
	"context"
	"strings"

	"github.com/albapepper/scoracle-teams/internal/catalog"
)

// Team is the canonical resolved-team shape consumed by image rendering.
type Team struct {
	ID             string `json:"id,omitempty"`
	Slug           string `json:"slug,omitempty"`
	City           string `json:"city,omitempty"`
	Name           string `json:"name"`
	FullName       string `json:"fullName"`
	Abbreviation   string `json:"abbreviation,omitempty"`
	Conference     string `json:"conference,omitempty"`
	Division       string `json:"division,omitempty"`
	Logo           string `json:"logo,omitempty"`
	LogoAlt        string `json:"logoAlt,omitempty"`
	Color          string `json:"color,omitempty"`
	AlternateColor string `json:"alternateColor,omitempty"`
}

// TeamSummary is one roster entry carried inside a NotFoundError. Providers
// fill whichever fields their upstream exposes; Label picks a display name.
type TeamSummary struct {
	DisplayName      string `json:"displayName,omitempty"`
	ShortDisplayName string `json:"shortDisplayName,omitempty"`
	FullName         string `json:"fullName,omitempty"`
	Name             string `json:"name,omitempty"`
	Abbreviation     string `json:"abbreviation,omitempty"`
	City             string `json:"city,omitempty"`
	Nickname         string `json:"nickname,omitempty"`
	Alternate        string `json:"alternate,omitempty"`
}

// Label returns the best display name for the roster entry, trying the
// provider shapes in a fixed order and combining city + nickname last.
func (s TeamSummary) Label() string {
	for _, v := range []string{s.ShortDisplayName, s.DisplayName, s.FullName, s.Name, s.Alternate} {
		if v != "" {
			return v
		}
	}
	if s.City != "" && s.Nickname != "" {
		return s.City + " " + s.Nickname
	}
	return ""
}

// Provider is the capability contract for a pluggable sports data source.
// Implementations own their HTTP clients and caches; the core treats them as
// opaque capabilities.
type Provider interface {
	// ID returns the unique lowercase provider identifier.
	ID() string

	// SupportedLeagues returns the league short names this provider declares
	// support for (used to build the implicit league index).
	SupportedLeagues() []string

	// CanHandleLeague reports whether the provider can serve the league.
	// Only the legacy single-provider-preference path consults it.
	CanHandleLeague(league *catalog.League) bool

	// ResolveTeam resolves a team identifier within a league. On a miss it
	// returns a *NotFoundError carrying the full roster it knows about.
	ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*Team, error)

	// LeagueLogoURL returns the league logo URL, or "" when the provider has
	// none for this league.
	LeagueLogoURL(ctx context.Context, league *catalog.League, darkPreferred bool) (string, error)

	// ClearCache drops any provider-internal cached state.
	ClearCache()
}

// Discoverer is the optional capability for handling leagues absent from the
// static catalog. Checked by type assertion, never required.
type Discoverer interface {
	// CanHandleUnconfiguredLeague reports whether the identifier names a
	// league this provider can serve anyway, and the sport it detected.
	CanHandleUnconfiguredLeague(ctx context.Context, identifier string) (bool, string)

	// UnconfiguredLeagueConfig synthesizes a league record for the detected
	// sport so the normal resolution path can run against it.
	UnconfiguredLeagueConfig(ctx context.Context, identifier, sport string) (*catalog.League, error)
}

// SupportsLeagueShortName is a helper for CanHandleLeague implementations.
func SupportsLeagueShortName(p Provider, league *catalog.League) bool {
	short := strings.ToLower(league.ShortName)
	for _, s := range p.SupportedLeagues() {
		if strings.ToLower(s) == short {
			return true
		}
	}
	return false
}
