package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-teams/internal/match"
	"github.com/albapepper/scoracle-teams/internal/provider"
)

func mustLoad(t *testing.T) *Store {
	t.Helper()
	s, err := Load()
	require.NoError(t, err)
	return s
}

func TestAliases(t *testing.T) {
	s := mustLoad(t)
	assert.Contains(t, s.Aliases("nfl", "kansas-city-chiefs"), "kc chiefs")
	assert.Nil(t, s.Aliases("nfl", "no-such-team"))
	assert.Nil(t, s.Aliases("xx", "kansas-city-chiefs"))
}

func TestAliasMatchesCompactAcrossLeagues(t *testing.T) {
	s := mustLoad(t)

	// Compact normalization: punctuation and case are ignored.
	assert.True(t, s.AliasMatches("N.F.C.", "nfc-all-stars"))
	assert.True(t, s.AliasMatches("KC Chiefs", "kansas-city-chiefs"))

	// The league is not part of the lookup, so a roster borrowed from a
	// feeder league still honors aliases curated for the original one.
	assert.True(t, s.AliasMatches("nottingham forest", "nottm-forest"))

	assert.False(t, s.AliasMatches("chiefs", "washington-commanders"))
	assert.False(t, s.AliasMatches("", "kansas-city-chiefs"))
}

func TestMatchScoreOverrideAbbreviation(t *testing.T) {
	s := mustLoad(t)
	c := match.Candidate{
		FullName:     "Washington Commanders",
		Name:         "Commanders",
		City:         "Washington",
		Abbreviation: "WAS",
	}

	// The curated abbreviation scores at full exact weight.
	assert.Equal(t, float64(1000), s.MatchScore("WSH", c, "washington-commanders", "nfl"))
	// Fields from the provider itself are discounted to 90%.
	assert.Equal(t, float64(900), s.MatchScore("WAS", c, "washington-commanders", "nfl"))
	assert.Equal(t, float64(810), s.MatchScore("commanders", c, "washington-commanders", "nfl"))
}

func TestMatchScoreWithoutOverride(t *testing.T) {
	s := NewStore()
	c := match.Candidate{Name: "Lakers", Abbreviation: "LAL"}
	assert.Equal(t, float64(900), s.MatchScore("LAL", c, "lakers", "nba"))
}

func TestApplyMergesCuratedFields(t *testing.T) {
	s := mustLoad(t)
	in := &provider.Team{
		Slug:         "nottm-forest",
		Name:         "Nottingham Forest",
		FullName:     "Nott'm Forest",
		Abbreviation: "NOT",
		Color:        "#DD0000",
	}

	out := s.Apply(in, "epl", "nottm-forest")
	assert.Equal(t, "Nottingham Forest", out.FullName)
	assert.Equal(t, "NFO", out.Abbreviation)
	assert.Equal(t, "#DD0000", out.Color, "fields without overrides pass through")
	assert.Equal(t, "Nott'm Forest", in.FullName, "input is not mutated")
}

func TestApplyWithoutEntryReturnsInput(t *testing.T) {
	s := mustLoad(t)
	in := &provider.Team{Slug: "arsenal", Name: "Arsenal"}
	assert.Same(t, in, s.Apply(in, "epl", "arsenal"))
}

func TestCustomTeamByAlias(t *testing.T) {
	s := mustLoad(t)

	team, ok := s.CustomTeam("nfl", "n.f.c.")
	require.True(t, ok)
	assert.Equal(t, "nfc-all-stars", team.Slug)
	assert.Equal(t, "NFC Pro Bowl All-Stars", team.FullName)
	assert.Equal(t, "NFC", team.Abbreviation)
	assert.Equal(t, "#013369", team.Color)
	assert.Equal(t, "#FFFFFF", team.AlternateColor, "alternate color defaults")
}

func TestCustomTeamBySlugForms(t *testing.T) {
	s := mustLoad(t)

	for _, id := range []string{"afc-all-stars", "AFC-All-Stars"} {
		team, ok := s.CustomTeam("nfl", id)
		require.True(t, ok, "CustomTeam(%q)", id)
		assert.Equal(t, "afc-all-stars", team.Slug)
	}
}

func TestCustomTeamIgnoresPlainOverrides(t *testing.T) {
	s := mustLoad(t)

	// Curated but not custom: must come from a provider.
	_, ok := s.CustomTeam("nfl", "washington-commanders")
	assert.False(t, ok)
	_, ok = s.CustomTeam("nfl", "chiefs")
	assert.False(t, ok)

	_, ok = s.CustomTeam("nba", "anything")
	assert.False(t, ok)
}

func TestCustomTeamDefaults(t *testing.T) {
	s, err := Parse([]byte(`{
		"xfl": {
			"dc-defenders": {"custom": true, "override": {"name": "DC Defenders"}}
		}
	}`))
	require.NoError(t, err)

	team, ok := s.CustomTeam("xfl", "dc-defenders")
	require.True(t, ok)
	assert.Equal(t, "DC Defenders", team.Name)
	assert.Equal(t, "DC Defenders", team.FullName, "full name falls back to name")
	assert.Equal(t, "DCD", team.Abbreviation, "abbreviation derives from the slug")
	assert.Equal(t, "#000000", team.Color)
}
