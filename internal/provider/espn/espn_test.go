package espn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/overrides"
)

func TestOverrideSlug(t *testing.T) {
	assert.Equal(t, "nottm-forest", overrideSlug(espnTeam{Slug: "eng.nottm_forest"}))
	assert.Equal(t, "kansas-city-chiefs", overrideSlug(espnTeam{Slug: "kansas-city-chiefs"}))
	assert.Equal(t, "359", overrideSlug(espnTeam{ID: "359"}), "id stands in for a missing slug")
}

func TestPickLogo(t *testing.T) {
	logos := []logo{
		{Href: "scoreboard.png", Rel: []string{"full", "scoreboard"}},
		{Href: "default.png", Rel: []string{"full", "default"}},
		{Href: "dark.png", Rel: []string{"full", "dark"}},
		{Href: "partial-dark.png", Rel: []string{"dark"}},
	}
	assert.Equal(t, "default.png", pickLogo(logos, "default"))
	assert.Equal(t, "dark.png", pickLogo(logos, "dark"))
	assert.Equal(t, "", pickLogo(logos, "dark-alt"))
	assert.Equal(t, "", pickLogo(nil, "default"))
}

func TestStandardize(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	ov, err := overrides.Load()
	require.NoError(t, err)
	p := New(cat, ov, Config{}, nil)

	nfl := cat.Get("nfl")
	require.NotNil(t, nfl)

	team := p.standardize(nfl, espnTeam{
		ID:           "12",
		Slug:         "kansas-city-chiefs",
		Location:     "Kansas City",
		Nickname:     "Chiefs",
		DisplayName:  "Kansas City Chiefs",
		Abbreviation: "KC",
		Color:        "e31837",
		Logos: []logo{
			{Href: "light.png", Rel: []string{"full", "default"}},
			{Href: "dark.png", Rel: []string{"full", "dark"}},
		},
	})

	assert.Equal(t, "Kansas City Chiefs", team.FullName)
	assert.Equal(t, "#e31837", team.Color)
	assert.Equal(t, "#ffffff", team.AlternateColor, "missing alternate color defaults")
	assert.Equal(t, "light.png", team.Logo)
	assert.Equal(t, "dark.png", team.LogoAlt)
}

func TestStandardizeAppliesOverrides(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	ov, err := overrides.Load()
	require.NoError(t, err)
	p := New(cat, ov, Config{}, nil)

	epl := cat.Get("epl")
	require.NotNil(t, epl)

	team := p.standardize(epl, espnTeam{
		Slug:        "eng.nottm_forest",
		DisplayName: "Nott'm Forest",
		Nickname:    "Forest",
	})
	assert.Equal(t, "Nottingham Forest", team.FullName, "curated full name wins")
	assert.Equal(t, "NFO", team.Abbreviation)
}

func TestBestMatchPrefersAlias(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	ov, err := overrides.Load()
	require.NoError(t, err)
	p := New(cat, ov, Config{}, nil)

	nfl := cat.Get("nfl")
	teams := []rosterEntry{
		{Team: espnTeam{Slug: "washington-commanders", DisplayName: "Washington Commanders", Nickname: "Commanders", Location: "Washington", Abbreviation: "WAS"}},
		{Team: espnTeam{Slug: "kansas-city-chiefs", DisplayName: "Kansas City Chiefs", Nickname: "Chiefs", Location: "Kansas City", Abbreviation: "KC"}},
	}

	best, score := p.bestMatch(nfl, "wft", teams)
	require.NotNil(t, best)
	assert.Equal(t, "washington-commanders", best.Team.Slug)
	assert.Equal(t, float64(1000), score)

	best, score = p.bestMatch(nfl, "chiefs", teams)
	require.NotNil(t, best)
	assert.Equal(t, "kansas-city-chiefs", best.Team.Slug)
	assert.Equal(t, float64(1000), score, "curated alias match")

	best, _ = p.bestMatch(nfl, "kansas city", teams)
	require.NotNil(t, best)
	assert.Equal(t, "kansas-city-chiefs", best.Team.Slug)
}

func TestRosterSummariesSorted(t *testing.T) {
	out := rosterSummaries([]rosterEntry{
		{Team: espnTeam{DisplayName: "Zeta", Nickname: "Z"}},
		{Team: espnTeam{DisplayName: "Alpha", Nickname: "A"}},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Alpha", out[0].DisplayName)
	assert.Equal(t, "Zeta", out[1].DisplayName)
}
