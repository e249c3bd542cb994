package provider

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-teams/internal/catalog"
)

type stubProvider struct {
	id      string
	leagues []string
}

func (s *stubProvider) ID() string                 { return s.id }
func (s *stubProvider) SupportedLeagues() []string { return s.leagues }
func (s *stubProvider) ClearCache()                {}

func (s *stubProvider) CanHandleLeague(l *catalog.League) bool {
	return SupportsLeagueShortName(s, l)
}

func (s *stubProvider) ResolveTeam(ctx context.Context, league *catalog.League, identifier string) (*Team, error) {
	return nil, NewNotFoundError(identifier, league.ShortName, nil)
}

func (s *stubProvider) LeagueLogoURL(ctx context.Context, league *catalog.League, dark bool) (string, error) {
	return "", fmt.Errorf("no logo")
}

// stubDiscoverer recognizes identifiers with a fixed prefix.
type stubDiscoverer struct {
	stubProvider
	prefix string
}

func (s *stubDiscoverer) CanHandleUnconfiguredLeague(ctx context.Context, identifier string) (bool, string) {
	if len(identifier) > len(s.prefix) && identifier[:len(s.prefix)] == s.prefix {
		return true, identifier[len(s.prefix):]
	}
	return false, ""
}

func (s *stubDiscoverer) UnconfiguredLeagueConfig(ctx context.Context, identifier, sport string) (*catalog.League, error) {
	return &catalog.League{Key: identifier, Name: identifier, ShortName: identifier}, nil
}

func leagueFromJSON(t *testing.T, data string) *catalog.League {
	t.Helper()
	c, err := catalog.Parse([]byte(fmt.Sprintf(`{"test": %s}`, data)))
	require.NoError(t, err)
	return c.Get("test")
}

func TestProvidersForExplicitSelectors(t *testing.T) {
	espn := &stubProvider{id: "espn"}
	sdb := &stubProvider{id: "thesportsdb"}
	reg := NewRegistry(nil, espn, sdb)

	league := leagueFromJSON(t, `{"shortName": "NFL", "providers": ["ESPN", {"theSportsDBConfig": {"leagueId": "4391"}}]}`)

	got := reg.ProvidersFor(league)
	require.Len(t, got, 2)
	assert.Equal(t, "espn", got[0].ID(), "bare string ids are lowercased")
	assert.Equal(t, "thesportsdb", got[1].ID(), "config key names infer the provider, Config suffix stripped")
}

func TestProvidersForExplicitProviderIDField(t *testing.T) {
	ncaa := &stubProvider{id: "ncaa"}
	reg := NewRegistry(nil, ncaa)

	league := leagueFromJSON(t, `{"shortName": "NCAAM", "providers": [{"providerId": "NCAA", "ncaaConfig": {"sport": "basketball-men"}}]}`)

	got := reg.ProvidersFor(league)
	require.Len(t, got, 1)
	assert.Equal(t, "ncaa", got[0].ID())
}

func TestProvidersForSkipsUnresolvedPreservingOrder(t *testing.T) {
	p2 := &stubProvider{id: "p2"}
	p3 := &stubProvider{id: "p3"}
	reg := NewRegistry(nil, p2, p3)

	league := leagueFromJSON(t, `{"shortName": "X", "providers": ["missing", "p3", "p2"]}`)

	got := reg.ProvidersFor(league)
	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID())
	assert.Equal(t, "p2", got[1].ID())
}

func TestProviderForLegacyProviderID(t *testing.T) {
	p := &stubProvider{id: "espn", leagues: []string{"nba"}}
	reg := NewRegistry(nil, p)

	league := leagueFromJSON(t, `{"shortName": "NBA", "providerId": "espn"}`)
	got, err := reg.ProviderFor(league)
	require.NoError(t, err)
	assert.Equal(t, "espn", got.ID())

	// providerId naming a provider that does not claim the league falls
	// through to the implicit short-name index.
	other := leagueFromJSON(t, `{"shortName": "NBA", "providerId": "nosuch"}`)
	got, err = reg.ProviderFor(other)
	require.NoError(t, err)
	assert.Equal(t, "espn", got.ID())
}

func TestProviderForImplicitIndexLastRegisteredWins(t *testing.T) {
	first := &stubProvider{id: "first", leagues: []string{"shared"}}
	second := &stubProvider{id: "second", leagues: []string{"shared"}}
	reg := NewRegistry(nil, first, second)

	league := leagueFromJSON(t, `{"shortName": "SHARED"}`)
	got, err := reg.ProviderFor(league)
	require.NoError(t, err)
	assert.Equal(t, "second", got.ID())
}

func TestProviderForNoProvider(t *testing.T) {
	reg := NewRegistry(nil)
	league := leagueFromJSON(t, `{"shortName": "EMPTY"}`)

	_, err := reg.ProviderFor(league)
	assert.Error(t, err)
	assert.Empty(t, reg.ProvidersFor(league))
}

func TestInitializeSkipsDuplicateIDs(t *testing.T) {
	a := &stubProvider{id: "dup", leagues: []string{"one"}}
	b := &stubProvider{id: "dup", leagues: []string{"two"}}
	reg := NewRegistry(nil, a, b)
	reg.Initialize()

	assert.Len(t, reg.Providers(), 1)
	assert.Equal(t, []string{"one"}, reg.SupportedLeagues())
}

func TestInitializeConcurrentlyRegistersOnce(t *testing.T) {
	providers := []Provider{
		&stubProvider{id: "a", leagues: []string{"l1"}},
		&stubProvider{id: "b", leagues: []string{"l2"}},
	}
	reg := NewRegistry(nil, providers...)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Initialize()
			_, _ = reg.Get("a")
		}()
	}
	wg.Wait()

	assert.Len(t, reg.Providers(), 2)
	assert.Equal(t, []string{"l1", "l2"}, reg.SupportedLeagues())
}

func TestFindUnconfiguredLeagueProbesInRegistrationOrder(t *testing.T) {
	plain := &stubProvider{id: "plain"}
	disco := &stubDiscoverer{stubProvider: stubProvider{id: "disco"}, prefix: "x"}
	reg := NewRegistry(nil, plain, disco)

	got, ok := reg.FindUnconfiguredLeague(context.Background(), "xsoftball")
	require.True(t, ok)
	assert.Equal(t, "disco", got.ProviderID)
	assert.Equal(t, "softball", got.Sport)
	require.NotNil(t, got.League)

	_, ok = reg.FindUnconfiguredLeague(context.Background(), "unknown")
	assert.False(t, ok)
}

func TestProviderInfo(t *testing.T) {
	plain := &stubProvider{id: "plain", leagues: []string{"nba"}}
	disco := &stubDiscoverer{stubProvider: stubProvider{id: "disco"}, prefix: "x"}
	reg := NewRegistry(nil, plain, disco)

	info := reg.ProviderInfo()
	require.Len(t, info, 2)
	assert.Equal(t, "plain", info[0].ID)
	assert.False(t, info[0].Discovery)
	assert.Equal(t, "disco", info[1].ID)
	assert.True(t, info[1].Discovery)
}
