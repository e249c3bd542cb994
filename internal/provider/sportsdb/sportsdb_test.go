package sportsdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/overrides"
)

func TestSplitName(t *testing.T) {
	city, nickname := splitName(sdbTeam{Name: "Kansas City Chiefs"})
	assert.Equal(t, "Kansas City", city)
	assert.Equal(t, "Chiefs", nickname)

	city, nickname = splitName(sdbTeam{Name: "Arsenal"})
	assert.Equal(t, "", city)
	assert.Equal(t, "Arsenal", nickname)
}

func TestSplitAlternates(t *testing.T) {
	assert.Equal(t,
		[]string{"Spurs", "Tottenham"},
		splitAlternates("Spurs, Tottenham"))
	assert.Equal(t, []string{"Wolves"}, splitAlternates(" Wolves ,"))
	assert.Nil(t, splitAlternates(""))
}

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "KAN", abbreviate("Kansas City Chiefs"))
	assert.Equal(t, "AX", abbreviate("A.X."))
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#ff0000", normalizeColor("ff0000"))
	assert.Equal(t, "#ff0000", normalizeColor("#ff0000"))
}

func newTestProvider(t *testing.T) (*Provider, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	ov, err := overrides.Load()
	require.NoError(t, err)
	return New(cat, ov, Config{}, nil), cat
}

func TestStandardize(t *testing.T) {
	p, cat := newTestProvider(t)
	epl := cat.Get("epl")
	require.NotNil(t, epl)

	team := p.standardize(epl, sdbTeam{
		ID:        "133604",
		Name:      "Tottenham Hotspur",
		ShortName: "TOT",
		Badge:     "badge.png",
		Logo:      "logo.png",
		Color1:    "132257",
		Color2:    "#ffffff",
	})
	assert.Equal(t, "tottenham-hotspur", team.Slug)
	assert.Equal(t, "Tottenham", team.City)
	assert.Equal(t, "Hotspur", team.Name)
	assert.Equal(t, "TOT", team.Abbreviation)
	assert.Equal(t, "badge.png", team.Logo)
	assert.Equal(t, "#132257", team.Color)
	assert.Equal(t, "#ffffff", team.AlternateColor)
}

func TestStandardizeDerivesAbbreviation(t *testing.T) {
	p, cat := newTestProvider(t)
	epl := cat.Get("epl")

	team := p.standardize(epl, sdbTeam{Name: "Arsenal"})
	assert.Equal(t, "ARS", team.Abbreviation)
	assert.Equal(t, "#000000", team.Color)
}

func TestBestMatchAlternateNames(t *testing.T) {
	p, cat := newTestProvider(t)
	epl := cat.Get("epl")

	teams := []sdbTeam{
		{Name: "Tottenham Hotspur", Alternate: "Spurs, Tottenham"},
		{Name: "Arsenal"},
	}
	best, score := p.bestMatch(epl, "spurs", teams)
	require.NotNil(t, best)
	assert.Equal(t, "Tottenham Hotspur", best.Name)
	assert.Greater(t, score, float64(700))
}

func TestBestMatchCuratedAlias(t *testing.T) {
	p, cat := newTestProvider(t)
	epl := cat.Get("epl")

	teams := []sdbTeam{
		{Name: "Wolves"},
		{Name: "Fulham"},
	}
	best, score := p.bestMatch(epl, "wolverhampton wanderers", teams)
	require.NotNil(t, best)
	assert.Equal(t, "Wolves", best.Name)
	assert.Equal(t, float64(1000), score)
}

func TestTeamSummariesSorted(t *testing.T) {
	out := teamSummaries([]sdbTeam{
		{Name: "Fulham"},
		{Name: "Arsenal"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Arsenal", out[0].FullName)
	assert.Equal(t, "Fulham", out[1].FullName)
}
